// Package catalog resolves card art from an image directory whose files are
// named Bank_CardName.ext.
package catalog

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// Entry is one card product found in the image directory.
type Entry struct {
	DisplayName string `json:"display_name"`
	Bank        string `json:"bank"`
	CardName    string `json:"card_name"`
	Filename    string `json:"filename"`
}

// Catalog maps display names ("Bank CardName") to image files.
type Catalog interface {
	Entries() ([]Entry, error)
	Lookup(displayName string) (Entry, bool, error)
}

type dirCatalog struct {
	dir string
}

// NewDirCatalog scans dir on every call so new images show up without a
// restart.
func NewDirCatalog(dir string) Catalog {
	return &dirCatalog{dir: dir}
}

// Entries lists the catalog sorted by display name. A missing directory is
// an empty catalog.
func (c *dirCatalog) Entries() ([]Entry, error) {
	files, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		log.Printf("⚠️ Image directory %s not found, catalog is empty", c.dir)
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		e, ok := ParseFilename(f.Name())
		if !ok || seen[e.DisplayName] {
			continue
		}
		seen[e.DisplayName] = true
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DisplayName < entries[j].DisplayName
	})
	return entries, nil
}

func (c *dirCatalog) Lookup(displayName string) (Entry, bool, error) {
	entries, err := c.Entries()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.DisplayName == displayName || e.Filename == displayName {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// ParseFilename splits "Bank_Card_Name.png" into bank "Bank" and card name
// "Card Name".
func ParseFilename(name string) (Entry, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if !imageExts[ext] {
		return Entry{}, false
	}
	parts := strings.Split(strings.TrimSuffix(name, filepath.Ext(name)), "_")
	if len(parts) < 2 || parts[0] == "" {
		return Entry{}, false
	}
	bank := parts[0]
	cardName := strings.TrimSpace(strings.Join(parts[1:], " "))
	if cardName == "" {
		return Entry{}, false
	}
	return Entry{
		DisplayName: bank + " " + cardName,
		Bank:        bank,
		CardName:    cardName,
		Filename:    name,
	}, true
}
