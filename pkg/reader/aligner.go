package reader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ghazali-project/ihya/pkg/ingest"
)

// AlignJob pairs an English translation page with the Arabic text it translates.
type AlignJob struct {
	Book        int
	EnglishPath string
	ArabicPath  string
	OutPath     string
}

// AlignResult reports the outcome of one AlignJob.
type AlignResult struct {
	Job     AlignJob
	Lines   int
	Blocks  int
	Skipped bool
	Err     error
}

// Aligner writes translation files for many books at once.
type Aligner struct {
	Workers int
	Logger  *slog.Logger
}

// AlignAll runs jobs on a worker pool. Results are returned in job order;
// a failed job is reported in its result and does not stop the others.
func (a *Aligner) AlignAll(ctx context.Context, jobs []AlignJob) ([]AlignResult, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]AlignResult, len(jobs))

	pool := ingest.NewWorkerPool(a.Workers, len(jobs))
	pool.Start(ctx)
	for i, job := range jobs {
		results[i].Job = job
		if err := pool.SubmitCtx(ctx, func(ctx context.Context) error {
			results[i] = alignOne(job)
			if err := results[i].Err; err != nil {
				logger.WarnContext(ctx, "align book failed", slog.Int("book", job.Book), slog.Any("error", err))
				return err
			}
			logger.InfoContext(ctx, "aligned book",
				slog.Int("book", job.Book),
				slog.String("out", job.OutPath),
				slog.Int("lines", results[i].Lines),
			)
			return nil
		}); err != nil {
			pool.Close()
			return results, err
		}
	}
	pool.Close()
	return results, ctx.Err()
}

func alignOne(job AlignJob) AlignResult {
	res := AlignResult{Job: job}
	content, err := os.ReadFile(job.EnglishPath)
	if err != nil {
		res.Err = err
		return res
	}
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(job.EnglishPath)}
	blocks, err := ExtractEnglishBlocks(content, pageURL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Blocks = len(blocks)
	if len(blocks) == 0 {
		res.Skipped = true
		return res
	}

	text, err := os.ReadFile(job.ArabicPath)
	if err != nil {
		res.Err = err
		return res
	}
	var arabic []string
	for _, line := range SplitLines(string(text)) {
		arabic = append(arabic, strings.TrimSpace(line))
	}

	entries := Align(arabic, blocks)
	res.Lines = len(entries)
	res.Err = WriteTranslation(job.OutPath, entries)
	return res
}

// WriteTranslation writes entries as an indented JSON array.
func WriteTranslation(path string, entries []TranslationEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode translation: %w", err)
	}
	return os.WriteFile(path, []byte(buf.String()), 0o644)
}

var englishPage = regexp.MustCompile(`vol(\d)-C(\d+)`)

// PlanAlignment builds one job per English page in englishDir (files named
// like ihya-vol2-C3.htm) whose Arabic text can be found in arabicDir.
// Output files take the Arabic file's base name with a .json extension.
func PlanAlignment(englishDir, arabicDir, outDir string) ([]AlignJob, error) {
	pages, err := filepath.Glob(filepath.Join(englishDir, "*.htm"))
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)

	var jobs []AlignJob
	for _, page := range pages {
		m := englishPage.FindStringSubmatch(filepath.Base(page))
		if m == nil {
			continue
		}
		vol, _ := strconv.Atoi(m[1])
		chap, _ := strconv.Atoi(m[2])
		book := (vol-1)*10 + chap

		arabic, err := FindArabicFile(arabicDir, book)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Warn("arabic text not found", slog.Int("book", book))
				continue
			}
			return nil, err
		}
		base := strings.TrimSuffix(filepath.Base(arabic), filepath.Ext(arabic))
		jobs = append(jobs, AlignJob{
			Book:        book,
			EnglishPath: page,
			ArabicPath:  arabic,
			OutPath:     filepath.Join(outDir, base+".json"),
		})
	}
	return jobs, nil
}

// FindArabicFile locates the processed text of absolute book number book.
// Known naming patterns are tried first, then a scan of dir.
func FindArabicFile(dir string, book int) (string, error) {
	vol := (book-1)/10 + 1
	rel := (book-1)%10 + 1

	candidates := []string{
		fmt.Sprintf("Vol%d-book-%d.txt", vol, rel),
		fmt.Sprintf("Vol%d-book%d.txt", vol, rel),
		fmt.Sprintf("j%d-k%02d.txt", vol, rel),
		fmt.Sprintf("j%d-k%d.txt", vol, rel),
		fmt.Sprintf("Vol%d-book-%da.txt", vol, rel),
	}
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	jk := regexp.MustCompile(fmt.Sprintf(`j%d-k%02d`, vol, rel))
	vb := regexp.MustCompile(fmt.Sprintf(`(?i)Vol%d.*book.*%d`, vol, rel))
	for _, e := range entries {
		if jk.MatchString(e.Name()) || vb.MatchString(e.Name()) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("book %d: %w", book, os.ErrNotExist)
}
