package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/ieeedraft/internal/config"
	"github.com/matsen/ieeedraft/internal/paper"
	"github.com/matsen/ieeedraft/internal/pdf"
	"github.com/matsen/ieeedraft/internal/richtext"
)

// draftSettings are the parse and render options for a draft command.
type draftSettings struct {
	FallbackTitle string
	WrapWidth     int
}

// resolveDraftSettings merges flags over workspace and global config.
// Drafts can be parsed outside a workspace, so a missing one is not an error.
func resolveDraftSettings(titleFlag string, widthFlag int) draftSettings {
	var cfg *config.Config
	if root, err := findWorkspace(); err == nil {
		if loaded, err := config.Load(root); err == nil {
			cfg = loaded
		} else {
			slog.Warn("ignoring unreadable workspace config", "error", err)
		}
	}

	s := draftSettings{FallbackTitle: config.ResolveFallbackTitle(cfg)}
	if cfg != nil {
		s.WrapWidth = cfg.WrapWidth
	}
	if titleFlag != "" {
		s.FallbackTitle = titleFlag
	}
	if widthFlag != 0 {
		s.WrapWidth = widthFlag
	}
	return s
}

// draftStdin is read when the draft path is "-".
var draftStdin io.Reader = os.Stdin

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF-")

// readDraft loads a draft file as rich content. The extension picks the
// reader; unknown extensions and "-" (stdin) are sniffed, PDFs included.
func readDraft(path string) (richtext.Content, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		text, err := pdf.ExtractText(path, 0)
		if err != nil {
			return richtext.Content{}, err
		}
		return richtext.FromString(text), nil
	}

	var data []byte
	var err error
	if path == "-" {
		ext = ""
		data, err = io.ReadAll(draftStdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return richtext.Content{}, fmt.Errorf("reading draft: %w", err)
	}

	switch ext {
	case ".md", ".markdown", ".txt":
		return richtext.FromString(string(data)), nil
	case ".html", ".htm":
		return richtext.FromHTML(string(data)), nil
	}
	if bytes.HasPrefix(data, pdfMagic) {
		text, err := pdf.ExtractTextReader(bytes.NewReader(data), int64(len(data)), 0)
		if err != nil {
			return richtext.Content{}, err
		}
		return richtext.FromString(text), nil
	}
	return richtext.Parse(data), nil
}

// loadDraft reads and parses a draft.
func loadDraft(path string, s draftSettings) (*paper.Paper, error) {
	content, err := readDraft(path)
	if err != nil {
		return nil, err
	}
	return paper.Parse(content, s.FallbackTitle), nil
}
