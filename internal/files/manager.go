package files

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var NotFound = fmt.Errorf("file is not found")

var ErrBadFileType = errors.New("file type not allowed")

// allowedExt is the upload allow-list. Order matters: example files are
// probed in this order.
var allowedExt = []string{"pdf", "jpg", "jpeg", "png"}

// Ext extracts the lowercased extension of a client-supplied filename and
// checks it against the allow-list.
func Ext(filename string) (string, error) {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return "", ErrBadFileType
	}

	ext := strings.ToLower(filename[idx+1:])

	for _, e := range allowedExt {
		if e == ext {
			return ext, nil
		}
	}

	return "", ErrBadFileType
}

func AllowedExt() []string {
	return allowedExt
}

// Manager stores uploaded files under two roots: one directory per submission
// under uploadsDir, one directory per claim under examplesDir.
type Manager struct {
	logger      *slog.Logger
	uploadsDir  string
	examplesDir string
}

func NewManager(uploadsDir, examplesDir string) *Manager {
	return &Manager{
		logger:      slog.With("logger", "files"),
		uploadsDir:  uploadsDir,
		examplesDir: examplesDir,
	}
}

func (m *Manager) Start() error {
	if err := os.MkdirAll(m.uploadsDir, 0777); err != nil {
		return err
	}

	return os.MkdirAll(m.examplesDir, 0777)
}

// SaveUpload writes a submission document under
// {uploadsDir}/{submissionID}/{documentID}.{ext}. A re-upload with the same
// extension overwrites the previous file.
func (m *Manager) SaveUpload(submissionID, documentID, filename string, r io.Reader) error {
	ext, err := Ext(filename)
	if err != nil {
		return err
	}

	dir := filepath.Join(m.uploadsDir, submissionID)

	return m.save(dir, documentID+"."+ext, r)
}

// SaveExample writes a reference file under
// {examplesDir}/{claimID}/{documentID}_esempio.{ext}.
func (m *Manager) SaveExample(claimID, documentID, filename string, r io.Reader) error {
	ext, err := Ext(filename)
	if err != nil {
		return err
	}

	dir := filepath.Join(m.examplesDir, claimID)

	return m.save(dir, fmt.Sprintf("%s_esempio.%s", documentID, ext), r)
}

// FindExample probes each allowed extension in order and returns the path of
// the first match.
func (m *Manager) FindExample(claimID, documentID string) (string, error) {
	dir := filepath.Join(m.examplesDir, claimID)

	for _, ext := range allowedExt {
		p := filepath.Join(dir, fmt.Sprintf("%s_esempio.%s", documentID, ext))
		if fileExists(p) {
			return p, nil
		}
	}

	return "", NotFound
}

// DeleteExample removes the reference file across all extensions.
func (m *Manager) DeleteExample(claimID, documentID string) error {
	dir := filepath.Join(m.examplesDir, claimID)

	deleted := false

	for _, ext := range allowedExt {
		p := filepath.Join(dir, fmt.Sprintf("%s_esempio.%s", documentID, ext))
		if fileExists(p) {
			if err := os.Remove(p); err != nil {
				m.logger.Error("error removing "+p, slog.Any("error", err))
				continue
			}

			deleted = true
		}
	}

	if !deleted {
		return NotFound
	}

	return nil
}

func (m *Manager) save(dir, name string, r io.Reader) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	fn, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer fn.Close()

	_, err = io.Copy(fn, r)

	return err
}

func fileExists(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return os.IsExist(err)
	}

	return true
}
