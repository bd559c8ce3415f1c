package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler captures a CPU profile and an execution trace when the simulation runs slow
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	stepBudget      time.Duration
	profilesDir     string
	logger          *log.Logger

	// wg tracks the capture goroutine
	wg sync.WaitGroup
}

// NewProfiler creates the profiles directory and a profiler writing into it
func NewProfiler(config ProfilingConfig, logger *log.Logger) (*Profiler, error) {
	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}
	return &Profiler{
		captureCooldown: config.Cooldown,
		captureDuration: config.CaptureDuration,
		stepBudget:      config.StepBudget,
		profilesDir:     config.Dir,
		logger:          logger,
	}, nil
}

// ObserveStep starts a capture when a step took longer than the budget.
// It reports whether a capture was started.
func (p *Profiler) ObserveStep(took time.Duration, reason string) bool {
	if took <= p.stepBudget {
		return false
	}
	if err := p.CaptureProfile(reason); err != nil {
		return false
	}
	p.logger.Printf("slow step (%v > %v), capturing profile %s", took, p.stepBudget, reason)
	return true
}

// CaptureProfile captures CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Check cooldown to avoid capturing too frequently
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("slow-step-%s-%s", timestamp, reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Printf("Error capturing CPU profile: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Printf("Error capturing trace: %v", err)
			}
		}()
		wg.Wait()

		p.summarize(baseName)
	}()

	return nil
}

// Wait blocks until a running capture has been written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Printf("CPU profile saved to: %s", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Printf("Trace saved to: %s", tracePath)
	return nil
}

// summarize logs where the capture went and the memory stats at the end of it
func (p *Profiler) summarize(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Printf("Warning: Could not analyze profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Printf("profile %s (%.2f KB), view with: go tool pprof -http=:8080 %s",
		baseName, float64(info.Size())/1024, profilePath)
	p.logger.Printf("memory: Alloc=%d KB TotalAlloc=%d KB Sys=%d KB NumGC=%d HeapObjects=%d",
		m.Alloc/1024, m.TotalAlloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}
