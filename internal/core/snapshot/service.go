// Package snapshot stores debug snapshots of runs that fell back to the
// canned trend set.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antoineross/supabase-go"
	storage_go "github.com/supabase-community/storage-go"

	"trendscraper/internal/config"
	"trendscraper/internal/core/extract"
	"trendscraper/internal/errs"
	"trendscraper/internal/logger"
)

const folder = "snapshots"

// ErrUnsupported is returned by Capture for pages that can neither screenshot
// themselves nor expose their document.
var ErrUnsupported = errors.New("page cannot be snapshotted")

// Capturer is implemented by pages that can screenshot themselves.
type Capturer interface {
	Screenshot() ([]byte, error)
}

// DocumentCapturer is implemented by pages backed by a fetched document.
type DocumentCapturer interface {
	HTML() (string, error)
}

// Format is a stored snapshot kind.
type Format struct {
	Ext         string
	ContentType string
}

var (
	FormatPNG  = Format{Ext: ".png", ContentType: "image/png"}
	FormatHTML = Format{Ext: ".html", ContentType: "text/html; charset=utf-8"}
)

type uploadFunc func(bucket, path string, data []byte, contentType string) error

type Service struct {
	log         *logger.Logger
	dataDir     string
	bucket      string
	supabaseURL string
	production  bool
	upload      uploadFunc
}

// New uploads to Supabase storage when it is configured and writes under
// DATA_DIR otherwise. Production refuses the local fallback.
func New(cfg config.Config) (*Service, error) {
	s := &Service{
		log:         logger.New("SnapshotService"),
		dataDir:     cfg.DataDir,
		bucket:      cfg.SupabaseBucket,
		supabaseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		production:  cfg.IsProduction(),
	}
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" || cfg.SupabaseBucket == "" {
		if s.production {
			return nil, errs.NewConfig("production requires NEXT_PUBLIC_SUPABASE_URL, SUPABASE_SERVICE_ROLE_KEY and SUPABASE_STORAGE_BUCKET for snapshots", nil)
		}
		return s, nil
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		if s.production {
			return nil, errs.NewConfig("supabase client", err)
		}
		s.log.LogWarnf("failed to initialize Supabase client, snapshots stay local: %v", err)
		return s, nil
	}
	s.upload = func(bucket, path string, data []byte, contentType string) error {
		_, err := client.Storage.UploadFile(bucket, path, bytes.NewReader(data), storage_go.FileOptions{ContentType: &contentType})
		return err
	}
	return s, nil
}

// Capture stores a PNG screenshot of page under the run id, or the loaded
// HTML document for pages that cannot render. It returns the location the
// snapshot can be fetched from.
func (s *Service) Capture(page extract.Page, runID string) (string, error) {
	switch p := page.(type) {
	case Capturer:
		data, err := p.Screenshot()
		if err != nil {
			return "", errs.NewStorage("snapshot", "screenshot", err)
		}
		return s.Save(runID, data, FormatPNG)
	case DocumentCapturer:
		doc, err := p.HTML()
		if err != nil {
			return "", errs.NewStorage("snapshot", "read document", err)
		}
		return s.Save(runID, []byte(doc), FormatHTML)
	default:
		return "", ErrUnsupported
	}
}

func (s *Service) Save(runID string, data []byte, f Format) (string, error) {
	name := sanitize(runID) + f.Ext

	if s.upload != nil {
		path := folder + "/" + name
		err := s.upload(s.bucket, path, data, f.ContentType)
		if err == nil {
			s.log.LogDebugf("uploaded snapshot %s to bucket %s", path, s.bucket)
			return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.supabaseURL, s.bucket, path), nil
		}
		if s.production {
			return "", errs.NewStorage("snapshot", "upload", err)
		}
		s.log.LogWarnf("supabase upload failed, saving locally: %v", err)
	}

	dir := filepath.Join(s.dataDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.NewStorage("snapshot", "create dir", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", errs.NewStorage("snapshot", "write file", err)
	}
	return "/files/" + folder + "/" + name, nil
}

func sanitize(id string) string {
	out := strings.NewReplacer("/", "-", "\\", "-", "..", "-", ":", "-").Replace(id)
	if len(out) > 64 {
		out = out[:64]
	}
	return out
}
