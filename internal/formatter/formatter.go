// package formatter renders recommendations as plain text, Markdown and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/moodmix/internal/models"
)

// Format names an output format of the recommend command.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat maps a flag value onto a [Format].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown or csv)", s)
	}
}

// Render dispatches to the exporter for f.
func Render(rec models.Recommendation, f Format, p *Palette) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return ToMarkdown(rec)
	case FormatCSV:
		return ToCSV(rec)
	default:
		return ToText(rec, p)
	}
}

// ToCSV converts a Recommendation to CSV with columns: ID, Name, Artists, Album Cover, Preview URL, Spotify URL
func ToCSV(rec models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artists", "Album Cover", "Preview URL", "Spotify URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range rec.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.Artists,
			track.AlbumCover,
			preview(track),
			track.SpotifyURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown converts a Recommendation to a Markdown list of linked tracks
func ToMarkdown(rec models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Mood: %s\n\n", rec.Emotion)
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(rec.Tracks))

	if len(rec.Tracks) == 0 {
		buf.WriteString("_No tracks found._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range rec.Tracks {
		fmt.Fprintf(&buf, "%d. [%s](%s) - %s", i+1, track.Name, track.SpotifyURL, track.Artists)
		if p := preview(track); p != "" {
			fmt.Fprintf(&buf, " ([preview](%s))", p)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToText converts a Recommendation to text, styled with p when it is non-nil
func ToText(rec models.Recommendation, p *Palette) ([]byte, error) {
	if p == nil {
		p = Plain()
	}

	var buf bytes.Buffer
	buf.WriteString(p.title.Render(fmt.Sprintf("Mood: %s", rec.Emotion)) + "\n")

	if len(rec.Tracks) == 0 {
		buf.WriteString(p.warn.Render("No tracks found.") + "\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(p.help.Render(fmt.Sprintf("%d tracks", len(rec.Tracks))) + "\n\n")
	for i, track := range rec.Tracks {
		fmt.Fprintf(&buf, "%2d. %s - %s\n", i+1, p.ok.Render(track.Name), track.Artists)
		fmt.Fprintf(&buf, "    %s\n", p.help.Render(track.SpotifyURL))
	}

	return buf.Bytes(), nil
}

// WriteFile writes data to path, or to stdout when path is empty or "-".
func WriteFile(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func preview(t models.Track) string {
	if t.PreviewURL == nil {
		return ""
	}
	return *t.PreviewURL
}
