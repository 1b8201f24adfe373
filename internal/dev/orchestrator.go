package dev

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/skit-sh/skit/config"
	"github.com/skit-sh/skit/internal/pipeline"

	"github.com/creack/pty"
	"github.com/fsnotify/fsnotify"
)

// Orchestrator watches a script's source file and rebuilds it on save.
type Orchestrator struct {
	config  *config.ProjectConfig
	module  string
	debug   bool
	watcher *fsnotify.Watcher

	rebuildMutex sync.Mutex
	lastRebuild  time.Time
}

// NewOrchestrator creates a dev orchestrator for a single module.
func NewOrchestrator(cfg *config.ProjectConfig, module string, debug bool) *Orchestrator {
	return &Orchestrator{
		config: cfg,
		module: module,
		debug:  debug,
	}
}

func (o *Orchestrator) log(message, color string) {
	timestamp := time.Now().Format("15:04:05")
	if color == "" {
		color = "\x1b[0m"
	}
	fmt.Printf("%s[%s] %s\x1b[0m\n", color, timestamp, message)
}

// Start runs an initial build, then watches the scripts directory until
// interrupted.
func (o *Orchestrator) Start() error {
	o.log(fmt.Sprintf("🚀 Watching %s for changes...", o.module), "\x1b[32m")

	// Initial build so the artifacts exist before the first edit
	o.rebuild()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	o.watcher = watcher
	defer watcher.Close()

	if err := watcher.Add(o.config.ScriptsDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", o.config.ScriptsDir, err)
	}

	go o.handleFileEvents()

	// Block until Ctrl-C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	o.log("👋 Stopping dev mode...", "\x1b[33m")
	return nil
}

func (o *Orchestrator) handleFileEvents() {
	source := o.module + o.config.Extension

	for {
		select {
		case event, ok := <-o.watcher.Events:
			if !ok {
				return
			}

			// Only trigger on the watched module's source, never on the
			// probe/harness temp files the build itself creates
			if !strings.HasSuffix(event.Name, source) {
				continue
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			// Debounce - editors often fire several events per save
			o.rebuildMutex.Lock()
			if time.Since(o.lastRebuild) > 2*time.Second {
				o.lastRebuild = time.Now()
				o.rebuildMutex.Unlock()

				go func() {
					o.log(fmt.Sprintf("📝 %s changed, rebuilding...", source), "\x1b[36m")
					o.rebuild()
				}()
			} else {
				o.rebuildMutex.Unlock()
			}

		case err, ok := <-o.watcher.Errors:
			if !ok {
				return
			}
			if o.debug {
				o.log(fmt.Sprintf("File watcher error: %v", err), "\x1b[31m")
			}
		}
	}
}

func (o *Orchestrator) rebuild() {
	builder := pipeline.NewOrchestrator(o.config, ptyRunner{log: o.formatLog}, o.debug)
	if err := builder.Build(o.module); err != nil {
		o.log(fmt.Sprintf("❌ Build failed: %v", err), "\x1b[31m")
		o.log("🔧 Fix the errors and save the file again to retry", "\x1b[36m")
		return
	}
}

func (o *Orchestrator) formatLog(line string) {
	fmt.Printf("\x1b[34m[Bundler]\x1b[0m %s\n", line)
}

// ptyRunner runs bundler commands under a PTY so their colored output
// survives the pipe.
type ptyRunner struct {
	log func(string)
}

func (r ptyRunner) Run(command, dir string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start bundler with PTY: %w", err)
	}
	defer ptmx.Close()

	// The PTY read side returns EIO when the child exits; the scanner just
	// stops there.
	scanner := bufio.NewScanner(ptmx)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			r.log(line)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("command failed: %s: %w", command, err)
	}
	return nil
}
