package theme

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/h2non/filetype"
	fixzip "github.com/hidez8891/zip"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssg/archive"
	"cssg/config"
	"cssg/css"
	"cssg/geom"
	"cssg/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if env.Cfg.Generate.TokensPath != "" {
		data, err := os.ReadFile(env.Cfg.Generate.TokensPath)
		if err != nil {
			return fmt.Errorf("unable to read default design tokens from %q: %w", env.Cfg.Generate.TokensPath, err)
		}
		env.DefaultTokens = data
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles the core generation logic independently of CLI framework.
// It determines the input type (directory, theme pack, or single file) and
// processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in theme pack
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return errors.New("unable to process directory")
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		pack, err := isPackFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check pack type: %w", err)
		}
		if pack {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processPack(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process theme pack: %w", err)
			}
			break
		}

		if isThemeFile(head) && len(tail) == 0 {
			if file, err := os.Open(head); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			} else {
				defer file.Close()
				if err := processTheme(ctx, file, dirAssets{root: filepath.Dir(head)}, filepath.Base(head), dst, log); err != nil {
					log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
				}
			}
			break
		}
		return fmt.Errorf("input was not recognized as theme definition (%s)", head)

	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding theme definitions and processes
// them.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		pack, err := isPackFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if pack {
			if err := processPack(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, log); err != nil {
				log.Error("Unable to process theme pack", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		if !isThemeFile(path) {
			log.Debug("Skipping file, not recognized as theme definition or pack", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processTheme(ctx, file, dirAssets{root: filepath.Dir(path)}, src, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processPack walks all files inside a theme pack, finds definitions under
// "pathIn" and processes them.
func processPack(ctx context.Context, packPath, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("pack", packPath))
		}
	}()

	err = archive.Walk(packPath, pathIn, func(pack string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !isThemeFile(f.FileHeader.Name) {
			log.Debug("Skipping file, not recognized as theme definition", zap.String("pack", pack), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in pack",
				zap.String("pack", pack), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		assets := packAssets{archive: pack, base: path.Dir(f.FileHeader.Name)}
		if err := processTheme(ctx, r, assets, filepath.Join(pathOut, filepath.FromSlash(f.FileHeader.Name)), dst, log); err != nil {
			log.Error("Unable to process file in pack",
				zap.String("pack", pack), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processTheme processes single theme definition. "src" is part of the
// source path (always including file name) relative to the original path.
// When actual file was specified it will be just base file name without a
// path. When looking inside pack or directory it will be relative path
// inside pack or directory (including base file name). "dst" is the
// destination directory where generated files should be written.
func processTheme(ctx context.Context, r io.Reader, assets Assets, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var themeID, outputName string

	log.Info("Generation starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: one bad theme in a set should not stop the rest from
		// generating.
		if r := recover(); r != nil {
			log.Error("Generation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("generation panic: %v", r)
		} else {
			log.Info("Generation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("theme_id", themeID))
		}
	}(time.Now())

	def, err := Parse(r, src, log)
	if err != nil {
		return fmt.Errorf("unable to parse theme source (%s): %w", src, err)
	}
	themeID = def.ID

	if err := def.ResolveTokens(env.DefaultTokens, assets, log); err != nil {
		return fmt.Errorf("unable to resolve design tokens (%s): %w", src, err)
	}

	fontAssets := assets
	if len(env.Cfg.Generate.Fonts.Dir) > 0 {
		fontAssets = dirAssets{root: env.Cfg.Generate.Fonts.Dir}
	}
	fonts := ResolveFonts(def, fontAssets, env.Cfg.Generate.Fonts.Mode, log)

	page := geom.NewRect(env.Cfg.Generate.Page.Width, env.Cfg.Generate.Page.Height)
	if def.Page != nil {
		page = geom.NewRect(def.Page.Width, def.Page.Height)
	}

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(def, src, dst, env)
	if env.Cfg.Generate.Bundle {
		outputName = strings.TrimSuffix(outputName, outputExt) + ".zip"
	}

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	sheet, err := Build(ctx, def, fonts, page, log)
	if err != nil {
		return fmt.Errorf("unable to build stylesheet: %w", err)
	}

	if env.Cfg.Generate.Bundle {
		err = writeBundle(outputName, def, sheet, fonts, page, env, log)
	} else {
		err = writeFiles(outputName, def, sheet, fonts, page, env, log)
	}
	if err != nil {
		return fmt.Errorf("unable to write generated output: %w", err)
	}

	// Store generation result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", themeID, filepath.Ext(outputName)), outputName)
		env.Rpt.StoreData(fmt.Sprintf("theme-%s.tree", themeID), []byte(DumpStylesheet(def, sheet)))
	}

	return nil
}

// writeFiles writes the stylesheet and its companions next to outputName:
// copied font files in embed mode and the preview page when enabled.
func writeFiles(outputName string, def *Definition, sheet *css.Stylesheet, fonts []Font, page geom.Rect, env *state.LocalEnv, log *zap.Logger) error {
	if err := os.WriteFile(outputName, []byte(sheet.String()), 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet '%s': %w", outputName, err)
	}
	log.Debug("Stylesheet written", zap.String("file", outputName))

	outDir := filepath.Dir(outputName)

	if env.Cfg.Generate.Fonts.Mode.CopiesFiles() && len(fonts) > 0 {
		if err := os.MkdirAll(filepath.Join(outDir, fontsDir), 0755); err != nil {
			return fmt.Errorf("unable to create fonts directory: %w", err)
		}
		for _, font := range fonts {
			name := filepath.Join(outDir, fontsDir, font.FileName)
			if err := os.WriteFile(name, font.Data, 0644); err != nil {
				return fmt.Errorf("unable to write font file '%s': %w", name, err)
			}
		}
	}

	if env.Cfg.Generate.Preview.Enable {
		doc := Preview(def, sheet, page, filepath.Base(outputName), previewTitle(def, env, log))
		name := strings.TrimSuffix(outputName, outputExt) + ".xhtml"
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create preview file '%s': %w", name, err)
		}
		if _, err := doc.WriteTo(f); err != nil {
			return multierr.Append(fmt.Errorf("unable to write preview '%s': %w", name, err), f.Close())
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("unable to write preview '%s': %w", name, err)
		}
		log.Debug("Preview written", zap.String("file", name))
	}
	return nil
}

// writeBundle packs the stylesheet and its companions into a single zip at
// outputName. The archive is assembled in a temporary file so a failed run
// never leaves a partial bundle at the destination.
func writeBundle(outputName string, def *Definition, sheet *css.Stylesheet, fonts []Font, page geom.Rect, env *state.LocalEnv, log *zap.Logger) error {
	tmpName := outputName + ".tmp"

	f, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	base := strings.TrimSuffix(filepath.Base(outputName), ".zip")

	out, err := w.Create(base + outputExt)
	if err != nil {
		return fmt.Errorf("unable to create bundle entry: %w", err)
	}
	if _, err := sheet.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write stylesheet to bundle: %w", err)
	}

	if env.Cfg.Generate.Fonts.Mode.CopiesFiles() {
		for _, font := range fonts {
			out, err := w.Create(path.Join(fontsDir, font.FileName))
			if err != nil {
				return fmt.Errorf("unable to create bundle entry: %w", err)
			}
			if _, err := out.Write(font.Data); err != nil {
				return fmt.Errorf("unable to write font file to bundle: %w", err)
			}
		}
	}

	if env.Cfg.Generate.Preview.Enable {
		doc := Preview(def, sheet, page, base+outputExt, previewTitle(def, env, log))
		out, err := w.Create(base + ".xhtml")
		if err != nil {
			return fmt.Errorf("unable to create bundle entry: %w", err)
		}
		if _, err := doc.WriteTo(out); err != nil {
			return fmt.Errorf("unable to write preview to bundle: %w", err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	// clean temporary file
	defer os.Remove(tmpName)

	if env.Cfg.Generate.FixZip {
		if err := copyZipWithoutDataDescriptors(tmpName, outputName); err != nil {
			return err
		}
	} else if err := copyFile(tmpName, outputName); err != nil {
		return err
	}

	log.Debug("Bundle written", zap.String("file", outputName))
	return nil
}

func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}

func previewTitle(def *Definition, env *state.LocalEnv, log *zap.Logger) string {
	title, err := expandTemplate(def, config.PreviewTitleTemplateFieldName, env.Cfg.Generate.Preview.TitleTemplate)
	if err != nil {
		log.Warn("Unable to prepare preview title", zap.Error(err))
		return def.Name
	}
	return title
}

// isPackFile sniffs the file header to see if path is a zip theme pack.
func isPackFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 261)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(buf[:n], "zip"), nil
}

// isThemeFile reports if the path looks like a YAML theme definition.
func isThemeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
