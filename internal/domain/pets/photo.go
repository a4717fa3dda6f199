package pets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"pawcare/internal/platform/apperr"
	"pawcare/internal/ports/blob"
)

const (
	thumbnailWidth  = 200
	thumbnailPrefix = "thumbs/"
	maxNameLen      = 96
)

var (
	ErrPhotosDisabled = errors.New("photo storage not configured")

	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedDots    = regexp.MustCompile(`\.{2,}`)
)

// AttachPhoto guarda el archivo en el área de blobs y apunta la ficha al path devuelto.
// No deja entrada en la bitácora. Si la ficha no se puede actualizar, se borran los blobs.
func (s *Service) AttachPhoto(ctx context.Context, id, filename, contentType string, r io.Reader) (Pet, error) {
	if s.photos == nil {
		return Pet{}, ErrPhotosDisabled
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Pet{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Pet{}, apperr.Invalid("file is empty")
	}

	key := PhotoKey(s.now(), filename)
	info, err := s.photos.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"pet_id": p.ID},
	})
	if err != nil {
		return Pet{}, fmt.Errorf("store photo: %w", err)
	}

	// miniatura best-effort: si no decodifica como imagen, seguimos sin ella
	thumbKey, thumbURL := "", ""
	if thumb, err := thumbnail(data); err == nil {
		ti, err := s.photos.Put(ctx, thumbnailPrefix+key, bytes.NewReader(thumb), blob.PutOptions{ContentType: "image/jpeg"})
		if err == nil {
			thumbKey, thumbURL = ti.Key, ti.URL
		}
	}

	p.Photo = info.URL
	p.PhotoThumbnail = thumbURL
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		_, _ = s.photos.Delete(ctx, key)
		if thumbKey != "" {
			_, _ = s.photos.Delete(ctx, thumbKey)
		}
		return Pet{}, fmt.Errorf("attach photo: %w", err)
	}
	return p, nil
}

// PhotoKey arma `<unix-ms>_<8 hex>_<nombre saneado>`; nunca contiene separadores de path.
func PhotoKey(now time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = repeatedDots.ReplaceAllString(name, ".")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "photo"
	}
	if len(name) > maxNameLen {
		// recortamos por la izquierda para conservar la extensión
		name = name[len(name)-maxNameLen:]
	}
	return fmt.Sprintf("%d_%s_%s", now.UnixMilli(), uuid.NewString()[:8], name)
}

func thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
