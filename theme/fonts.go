package theme

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"cssg/config"
)

// fontsDir is the directory next to the generated stylesheet where embedded
// font files are copied.
const fontsDir = "fonts"

// Font is a theme font asset loaded and verified for generation. Ref is
// the reference emitted into @font-face src, FileName the base name used
// when the file is copied next to the stylesheet.
type Font struct {
	Spec     FontSpec
	Data     []byte
	MimeType string
	Format   string
	FileName string
	Ref      string
}

// ResolveFonts loads and verifies the font assets of the theme. Fonts that
// cannot be loaded or fail verification are skipped, generation continues
// without them. In link mode source references are kept as authored, in
// embed mode they are rewritten to the fonts directory next to the output.
func ResolveFonts(def *Definition, assets Assets, mode config.FontMode, log *zap.Logger) []Font {
	if !mode.EmitsFontFaces() {
		return nil
	}

	fonts := make([]Font, 0, len(def.Fonts))
	for _, spec := range def.Fonts {
		data, err := assets.ReadFile(spec.File)
		if err != nil {
			log.Warn("Unable to load font file, skipping", zap.String("file", spec.File), zap.Error(err))
			continue
		}

		// Detect MIME type - prefer extension-based detection for fonts
		mimeType := ""
		if ext := filepath.Ext(spec.File); ext != "" {
			mimeType = extToMimeType(ext)
		}
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}

		if !validateFontData(mimeType, data) {
			log.Warn("Font file failed validation, skipping", zap.String("file", spec.File), zap.String("mime", mimeType))
			continue
		}

		font := Font{
			Spec:     spec,
			Data:     data,
			MimeType: mimeType,
			Format:   formatHint(mimeType),
			FileName: filepath.Base(spec.File),
		}
		if filepath.Ext(font.FileName) == "" {
			font.FileName += mimeToExtension(mimeType)
		}
		switch mode {
		case config.FontModeEmbed:
			font.Ref = path.Join(fontsDir, font.FileName)
		case config.FontModeLink:
			font.Ref = filepath.ToSlash(spec.File)
		}

		log.Debug("Font file resolved",
			zap.String("family", spec.Family), zap.String("file", spec.File),
			zap.String("mime", mimeType), zap.Int("bytes", len(data)))
		fonts = append(fonts, font)
	}
	return fonts
}

// validateFontData performs additional sanity checks on loaded font data
func validateFontData(mimeType string, data []byte) bool {
	switch mimeType {
	case "font/woff":
		return filetype.Is(data, "woff")
	case "font/woff2":
		return filetype.Is(data, "woff2")
	case "font/ttf":
		return filetype.Is(data, "ttf")
	case "font/otf":
		return filetype.Is(data, "otf")
	}
	return isFontMIME(mimeType)
}

// formatHint maps a font MIME type to the CSS format() hint.
func formatHint(mimeType string) string {
	switch mimeType {
	case "font/woff", "application/font-woff":
		return "woff"
	case "font/woff2", "application/font-woff2":
		return "woff2"
	case "font/ttf", "application/x-font-ttf", "application/font-sfnt":
		return "truetype"
	case "font/otf", "application/x-font-otf":
		return "opentype"
	case "application/vnd.ms-fontobject":
		return "embedded-opentype"
	default:
		return ""
	}
}

// mimeToExtension returns file extension for common font MIME types
func mimeToExtension(mimeType string) string {
	switch mimeType {
	case "font/woff", "application/font-woff":
		return ".woff"
	case "font/woff2", "application/font-woff2":
		return ".woff2"
	case "font/ttf", "application/x-font-ttf", "application/font-sfnt":
		return ".ttf"
	case "font/otf", "application/x-font-otf":
		return ".otf"
	case "application/vnd.ms-fontobject":
		return ".eot"
	default:
		return ""
	}
}

// extToMimeType returns MIME type for common font file extensions
func extToMimeType(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	case ".eot":
		return "application/vnd.ms-fontobject"
	default:
		return ""
	}
}

// isFontMIME returns true if the MIME type indicates a font resource
func isFontMIME(mimeType string) bool {
	return strings.HasPrefix(mimeType, "font/") ||
		strings.HasPrefix(mimeType, "application/font-") ||
		strings.HasPrefix(mimeType, "application/x-font-") ||
		mimeType == "application/vnd.ms-fontobject"
}
