package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Save streams write into a temp file next to path and renames it into place, so readers never see a partial
// document.
func Save(path string, write func(io.Writer) error) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.tmp", id.String()))

	f, err := os.Create(tmp)
	if err != nil {
		err = fmt.Errorf("error creating temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		Remove(tmp)
		return fmt.Errorf("error writing temp file %w", err)
	}

	if err := f.Close(); err != nil {
		Remove(tmp)
		return fmt.Errorf("error closing temp file %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		Remove(tmp)
		err = fmt.Errorf("error moving output into place %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}

	log.Debug().Str("path", path).Msg("saved output")

	return nil
}

// Read returns the content of the file at path.
func Read(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("error reading file %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	return buf, nil
}

// Remove deletes the file at path and logs success or failure.
func Remove(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up file")
}
