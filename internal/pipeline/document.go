package pipeline

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// NoSpeechMarker is the transcript body used when recognition completes with
// no output. Silent or unintelligible audio is a valid outcome, not a fault.
const NoSpeechMarker = "No speech detected in audio."

// Document carries everything the transcript report renders.
type Document struct {
	SourceFile    string
	Language      string
	Engine        string
	GeneratedAt   time.Time
	FileSizeBytes int64
	Transcript    string
}

// DocumentRenderer produces the downloadable transcript artifact.
type DocumentRenderer interface {
	Render(doc Document) ([]byte, error)
}

// pdfRenderer renders the report as a PDF.
type pdfRenderer struct{}

// NewPDFRenderer builds the production document renderer.
func NewPDFRenderer() DocumentRenderer {
	return pdfRenderer{}
}

func (pdfRenderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Audio Transcription Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Audio Transcription Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Document Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Original File", doc.SourceFile},
		{"Transcription Date", doc.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Language", doc.Language},
		{"Engine", doc.Engine},
		{"File Size", fmt.Sprintf("%.2f MB", float64(doc.FileSizeBytes)/(1024*1024))},
	}
	for _, row := range meta {
		pdf.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Transcription", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, doc.Transcript, "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 6, "Generated by transcribed (offline)", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
