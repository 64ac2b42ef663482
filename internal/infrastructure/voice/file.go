package voice

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	domain "github.com/felixgeelhaar/fashionous/pkg/domain/voice"
	"github.com/fsnotify/fsnotify"
)

// partialSuffix marks files holding interim hypotheses; they are ignored.
const partialSuffix = ".partial"

// FileRecognizer reads utterances that an external speech engine writes
// into a directory, one file per utterance. The last non-empty line of a
// newly written file is the transcript.
type FileRecognizer struct {
	dir      string
	debounce time.Duration
}

// NewFileRecognizer watches dir. A zero debounce defaults to 200ms.
func NewFileRecognizer(dir string, debounce time.Duration) *FileRecognizer {
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}
	return &FileRecognizer{dir: dir, debounce: debounce}
}

func (r *FileRecognizer) Name() string { return "file:" + r.dir }

// Recognize blocks until a final utterance file appears or ctx is done.
func (r *FileRecognizer) Recognize(ctx context.Context, req domain.Request) (domain.Utterance, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.Utterance{}, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(r.dir); err != nil {
		return domain.Utterance{}, fmt.Errorf("watch %s: %w", r.dir, err)
	}

	var (
		mu       sync.Mutex
		lastPath string
	)
	ready := make(chan string, 1)
	d := newDebouncer(r.debounce, func() {
		mu.Lock()
		path := lastPath
		mu.Unlock()
		select {
		case ready <- path:
		default:
		}
	})
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return domain.Utterance{}, ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return domain.Utterance{}, domain.ErrNoSpeech
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isUtteranceFile(event.Name, req.Interim) {
				continue
			}
			mu.Lock()
			lastPath = event.Name
			mu.Unlock()
			d.trigger()

		case path := <-ready:
			text, err := lastLine(path)
			if err != nil || text == "" {
				continue
			}
			return domain.Utterance{Transcript: text, Confidence: 1}, nil

		case err, ok := <-w.Errors:
			if !ok {
				return domain.Utterance{}, domain.ErrNoSpeech
			}
			return domain.Utterance{}, fmt.Errorf("watcher error: %w", err)
		}
	}
}

func isUtteranceFile(path string, interim bool) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if !interim && strings.HasSuffix(base, partialSuffix) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func lastLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	return last, scanner.Err()
}
