package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressBar tracks multi-file staging progress
type ProgressBar struct {
	total     int
	current   int
	startTime time.Time
	mu        sync.Mutex

	currentFile string
}

// NewProgressBar creates a new progress bar
func NewProgressBar(total int) *ProgressBar {
	return &ProgressBar{
		total:     total,
		startTime: time.Now(),
	}
}

// Update advances the progress bar to the given position
func (p *ProgressBar) Update(current int, file string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.currentFile = file

	p.render()
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)

	fmt.Printf("\n%s %d file(s) staged in %s\n",
		ColorSuccess("✓"),
		p.current,
		formatDuration(elapsed),
	)
}

func (p *ProgressBar) render() {
	// Clear line
	fmt.Print("\r\033[K")

	percentage := float64(p.current) / float64(p.total) * 100

	barWidth := 30
	filled := int(percentage / 100 * float64(barWidth))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	file := p.currentFile
	if len(file) > 40 {
		file = "..." + file[len(file)-37:]
	}

	fmt.Printf("%s %s %.0f%% [%d/%d] %s - %s",
		ColorProgress("►"),
		bar,
		percentage,
		p.current,
		p.total,
		file,
		formatDuration(time.Since(p.startTime)),
	)
}
