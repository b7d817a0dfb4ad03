// Package progress reports release step progress to the operator.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Tracker interface defines methods for tracking step progress
type Tracker interface {
	Start(step string) *Step
	Complete()
	Error(err error)
}

// Step represents a tracked release step
type Step struct {
	Name      string
	StartTime time.Time
	Status    string
}

// ConsoleTracker implements Tracker for console output
type ConsoleTracker struct {
	out         io.Writer
	currentStep *Step
}

// NewConsoleTracker creates a new console-based step tracker
func NewConsoleTracker() *ConsoleTracker {
	return &ConsoleTracker{out: os.Stdout}
}

// NewConsoleTrackerWithWriter creates a tracker writing to w, used in tests
func NewConsoleTrackerWithWriter(w io.Writer) *ConsoleTracker {
	return &ConsoleTracker{out: w}
}

// Start begins tracking a new step
func (t *ConsoleTracker) Start(step string) *Step {
	t.currentStep = &Step{
		Name:      step,
		StartTime: time.Now(),
		Status:    "in_progress",
	}
	fmt.Fprintf(t.out, "Starting: %s\n", step)
	return t.currentStep
}

// Complete marks the current step as completed
func (t *ConsoleTracker) Complete() {
	if t.currentStep == nil {
		return
	}
	t.currentStep.Status = "completed"
	duration := time.Since(t.currentStep.StartTime).Round(time.Millisecond)
	fmt.Fprintf(t.out, "Completed: %s (took %v)\n", t.currentStep.Name, duration)
	t.currentStep = nil
}

// Error marks the current step as failed
func (t *ConsoleTracker) Error(err error) {
	if t.currentStep == nil {
		return
	}
	t.currentStep.Status = "failed"
	fmt.Fprintf(t.out, "Failed: %s - %v\n", t.currentStep.Name, err)
	t.currentStep = nil
}
