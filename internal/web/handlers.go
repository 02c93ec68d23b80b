package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/desertthunder/moodmix/internal/camera"
	"github.com/desertthunder/moodmix/internal/emotion"
	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/shared"
)

const (
	msgCameraUnavailable = "Unable to access camera"
	msgDetectFailed      = "Unable to detect emotion"
	msgInvalidBody       = "invalid request body"

	maxBodyBytes = 1 << 20
)

type errorBody struct {
	Error string `json:"error"`
}

type pageData struct {
	Title    string
	Username string
	Emotions []models.Emotion
}

// emojiRequest distinguishes a missing emotion from an empty one.
type emojiRequest struct {
	Emotion *string `json:"emotion"`
}

func (a *App) render(w http.ResponseWriter, name string, data pageData) {
	t, ok := a.templates[name]
	if !ok {
		a.logger.Error("unknown template", "name", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		a.logger.Error("failed to render template", "name", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (a *App) page(name string) http.HandlerFunc {
	titles := map[string]string{"index": "moodmix", "webcam": "Webcam", "emoji": "Pick a mood"}
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Title: titles[name], Emotions: models.Emotions}
		if s, ok := SessionFrom(r.Context()); ok {
			data.Username = s.Username
		}
		a.render(w, name, data)
	}
}

func (a *App) videoFeed(w http.ResponseWriter, r *http.Request) {
	if !a.camera.Available() {
		writeJSON(w, http.StatusOK, errorBody{Error: msgCameraUnavailable})
		return
	}

	w.Header().Set("Content-Type", camera.StreamContentType)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)

	n, err := a.camera.Stream(r.Context(), w)
	if err != nil && r.Context().Err() == nil {
		a.logger.Warn("video stream ended", "frames", n, "error", err)
		return
	}
	a.logger.Debug("video stream closed", "frames", n)
}

func (a *App) getEmotion(w http.ResponseWriter, r *http.Request) {
	frame, err := a.camera.Capture(r.Context())
	if err != nil {
		if !errors.Is(err, shared.ErrCameraUnavailable) {
			a.logger.Error("capture failed", "error", err)
		}
		writeJSON(w, http.StatusOK, errorBody{Error: msgCameraUnavailable})
		return
	}

	label, err := a.detector.Detect(r.Context(), camera.Mirror(frame))
	if err != nil {
		a.logger.Error("emotion detection failed", "error", err)
		writeJSON(w, http.StatusOK, errorBody{Error: msgDetectFailed})
		return
	}

	writeJSON(w, http.StatusOK, a.recommender.Recommend(r.Context(), label))
}

func (a *App) emojiSelect(w http.ResponseWriter, r *http.Request) {
	var req emojiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidBody})
		return
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidBody})
		return
	}

	writeJSON(w, http.StatusOK, a.recommender.Recommend(r.Context(), emotion.Label(req.Emotion)))
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}
