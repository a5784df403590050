package imaging

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bep/imagemeta"
	"go.uber.org/zap"
)

const imageUniqueIDTag = "ImageUniqueID"

// KeySequence maps source tile i (raster order) to destination cell KeySequence[i].
type KeySequence []uint32

// formats whose containers can carry an EXIF block
var metadataFormats = map[string]imagemeta.ImageFormat{
	"jpeg": imagemeta.JPEG,
	"png":  imagemeta.PNG,
	"webp": imagemeta.WebP,
	"tiff": imagemeta.TIFF,
}

func ExtractKeys(data []byte) (KeySequence, error) {
	raw, err := ReadImageUniqueID(data)
	if err != nil {
		return nil, err
	}
	return ParseKeys(raw)
}

// ReadImageUniqueID returns the raw EXIF ImageUniqueID value of the image.
func ReadImageUniqueID(data []byte) (string, error) {
	format, err := DetectImageFormat(data)
	if err != nil {
		return "", err
	}
	metaFormat, ok := metadataFormats[format]
	if !ok {
		return "", fmt.Errorf("%w: %s images carry no exif", ErrMetadataMissing, format)
	}

	var (
		value string
		found bool
	)
	err = imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: metaFormat,
		Sources:     imagemeta.EXIF,
		HandleTag: func(info imagemeta.TagInfo) error {
			if info.Tag != imageUniqueIDTag {
				return nil
			}
			value = tagString(info.Value)
			found = true
			return nil
		},
		Warnf: func(format string, args ...any) {
			zap.S().Debugf("exif: "+format, args...)
		},
	})
	if found {
		if err != nil {
			zap.S().Debugf("ignoring exif error after %s was read: %v", imageUniqueIDTag, err)
		}
		return value, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMetadataMissing, err)
	}
	return "", ErrMetadataMissing
}

// ParseKeys parses a colon separated list of hexadecimal keys,
// optionally wrapped in quotes.
func ParseKeys(raw string) (KeySequence, error) {
	cleaned := strings.ReplaceAll(raw, `"`, "")
	cleaned = strings.TrimRight(cleaned, "\x00 ")

	segments := strings.Split(cleaned, ":")
	keys := make(KeySequence, 0, len(segments))
	for _, segment := range segments {
		key, err := strconv.ParseUint(segment, 16, 32)
		if err != nil {
			return nil, &KeyParseError{Token: segment, Raw: cleaned, Err: err}
		}
		keys = append(keys, uint32(key))
	}
	return keys, nil
}

func tagString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
