// Package capture drives a headless browser through a p5.js sketch's own
// frame recorder. It serves the sketch directory over loopback, sends the
// sketch's start/stop recording keys, waits for the recorder's tar
// download, and unpacks it into a frame directory for the conversion
// engine.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// ErrNoSketch reports a sketch directory without an HTML entry point.
var ErrNoSketch = errors.New("no sketch HTML file found")

// Recording keys understood by the sketch's built-in recorder.
const (
	startKey = "r"
	stopKey  = "s"
)

// Options configures a capture session.
type Options struct {
	// SketchDir holds the p5.js sketch (HTML plus assets).
	SketchDir string

	// OutputDir receives the extracted raw frames.
	OutputDir string

	// Frames and FPS size the recording window: the recorder runs for
	// Frames/FPS seconds after the start key.
	Frames int
	FPS    float64

	// StartDelay lets the sketch settle after the canvas appears before
	// recording starts.
	StartDelay time.Duration

	// DownloadTimeout bounds the wait for the recorder's tar download
	// after the stop key. Zero means 30 seconds.
	DownloadTimeout time.Duration
}

// FindSketchHTML locates the sketch entry point under dir: index.html if
// present, otherwise the first HTML file in sorted order. A path to an
// HTML file is returned as-is.
func FindSketchHTML(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("sketch %s: %w", path, err)
	}
	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), ".html") {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s is not an HTML file", ErrNoSketch, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("sketch %s: %w", path, err)
	}

	var htmls []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.EqualFold(name, "index.html") {
			return filepath.Join(path, name), nil
		}
		if strings.EqualFold(filepath.Ext(name), ".html") {
			htmls = append(htmls, name)
		}
	}
	if len(htmls) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoSketch, path)
	}
	sort.Strings(htmls)
	return filepath.Join(path, htmls[0]), nil
}

// Run captures a sketch recording session and returns the directory of
// extracted frames (Options.OutputDir).
func Run(ctx context.Context, opts Options) (string, error) {
	if opts.Frames <= 0 || opts.FPS <= 0 {
		return "", fmt.Errorf("capture: frames %d and fps %g must be positive",
			opts.Frames, opts.FPS)
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout == 0 {
		downloadTimeout = 30 * time.Second
	}

	html, err := FindSketchHTML(opts.SketchDir)
	if err != nil {
		return "", err
	}
	sketchDir := filepath.Dir(html)

	srv, err := StartServer(sketchDir)
	if err != nil {
		return "", err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	downloads, err := os.MkdirTemp("", "ascii-dome-capture")
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	defer os.RemoveAll(downloads)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	url := srv.URL() + "/" + filepath.Base(html)
	recordFor := time.Duration(float64(opts.Frames)/opts.FPS*float64(time.Second)) +
		time.Second // buffer so the last frame lands before stop

	log.WithFields(log.Fields{
		"url":    url,
		"frames": opts.Frames,
		"fps":    opts.FPS,
		"window": recordFor,
	}).Info("starting sketch capture")

	err = chromedp.Run(browserCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(downloads),
		chromedp.Navigate(url),
		chromedp.WaitVisible("canvas", chromedp.ByQuery),
		chromedp.Sleep(opts.StartDelay),
		chromedp.KeyEvent(startKey),
		chromedp.Sleep(recordFor),
		chromedp.KeyEvent(stopKey),
	)
	if err != nil {
		return "", fmt.Errorf("capture: drive browser: %w", err)
	}

	archive, err := waitForDownload(ctx, downloads, downloadTimeout)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	n, err := ExtractTar(archive, opts.OutputDir)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if n == 0 {
		return "", errors.New("capture: recorder archive contained no frames")
	}
	log.WithFields(log.Fields{"frames": n, "dir": opts.OutputDir}).
		Info("extracted captured frames")

	return opts.OutputDir, nil
}

// waitForDownload polls the scratch download directory until the
// recorder's tar archive is fully written or the timeout elapses. An
// in-progress Chrome download has a .crdownload suffix.
func waitForDownload(ctx context.Context, dir string, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(e.Name()), ".tar") {
				return filepath.Join(dir, e.Name()), nil
			}
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("no recorder download after %s; was the sketch recording?", timeout)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
