package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/errclass"
	"github.com/lessonkit/lessonkit/pkg/metrics"
)

// SectionOutcome is the end state of one section's loop. A UserMessage
// is only present when every attempt was exhausted; transient failures
// that later succeed never surface to the user.
type SectionOutcome struct {
	Section    models.SectionType
	Text       string
	Validation models.ValidationResult
	Attempts   int
	Classified *models.ClassifiedError
	UserMsg    *models.UserErrorMessage
}

// Accepted reports whether the section passed validation.
func (o SectionOutcome) Accepted() bool {
	return o.Classified == nil && o.Validation.IsValid &&
		o.Validation.Score >= float64(acceptScore)
}

const acceptScore = 60

// Loop runs the generate -> validate -> accept-or-regenerate cycle for
// one section at a time. Different sections may run their loops
// concurrently; each loop's state is independent.
type Loop struct {
	client  Client
	opts    models.Options
	tracker *metrics.Tracker
	rng     *rand.Rand
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewLoop(client Client, opts models.Options, tracker *metrics.Tracker) *Loop {
	return &Loop{
		client:  client,
		opts:    opts,
		tracker: tracker,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:   ctxSleep,
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Run generates a section, validates it with the supplied validator,
// and regenerates on rejection up to the attempt cap, keeping the best
// attempt. Section metrics are recorded exactly once per run.
func (l *Loop) Run(ctx context.Context, section models.SectionType, prompt string, genOpts GenOptions, validate func(text string) models.ValidationResult) SectionOutcome {
	start := time.Now()
	outcome := SectionOutcome{Section: section}

	var best *SectionOutcome
	for attempt := 1; attempt <= l.opts.MaxRetryAttempts; attempt++ {
		outcome.Attempts = attempt

		text, classified := l.generateWithRetry(ctx, section, prompt, genOpts)
		if classified != nil {
			outcome.Classified = classified
			user := errclass.UserMessage(classified)
			outcome.UserMsg = &user
			break
		}

		outcome.Text = text
		outcome.Validation = validate(text)
		if outcome.Accepted() {
			best = &outcome
			break
		}
		if best == nil || outcome.Validation.Score > best.Validation.Score {
			copied := outcome
			best = &copied
		}
	}

	if best != nil && outcome.Classified == nil {
		attempts := outcome.Attempts
		outcome = *best
		outcome.Attempts = attempts
	}

	l.record(outcome, time.Since(start))
	return outcome
}

// generateWithRetry calls the endpoint, automatically retrying
// transient (network/quota) failures with capped exponential backoff.
// It returns a classification only when retries are exhausted or the
// failure is not transient.
func (l *Loop) generateWithRetry(ctx context.Context, section models.SectionType, prompt string, genOpts GenOptions) (string, *models.ClassifiedError) {
	var classified *models.ClassifiedError
	for try := 0; try < l.opts.MaxRetryAttempts; try++ {
		text, err := l.client.Generate(ctx, prompt, genOpts)
		if err == nil {
			return text, nil
		}

		classified = errclass.Classify(err, models.ErrorContext{
			LessonType:    string(section),
			ContentLength: len(prompt),
			Timestamp:     time.Now(),
		})

		transient := classified.Kind == models.ErrNetwork || classified.Kind == models.ErrQuotaExceeded
		if !transient || try+1 >= l.opts.MaxRetryAttempts {
			return "", classified
		}

		delay := retryBackoff(l.opts.RetryBaseDelay, l.opts.RetryMaxDelay, try, l.rng)
		if err := l.sleep(ctx, delay); err != nil {
			return "", classified
		}
	}
	return "", classified
}

// retryBackoff mirrors the session retry formula:
// min(maxDelay, base*2^attempt + uniform(0, 0.1*base*2^attempt)).
func retryBackoff(base, max time.Duration, attempt int, rng *rand.Rand) time.Duration {
	exp := base << uint(attempt)
	if exp <= 0 || exp > max {
		exp = max
	}
	delay := exp + time.Duration(rng.Float64()*0.1*float64(exp))
	if delay > max {
		delay = max
	}
	return delay
}

func (l *Loop) record(o SectionOutcome, elapsed time.Duration) {
	if l.tracker == nil {
		return
	}
	l.tracker.Record(models.SectionMetrics{
		Section:          o.Section,
		Score:            o.Validation.Score,
		AttemptCount:     o.Attempts,
		GenerationTimeMs: elapsed.Milliseconds(),
		IssueCount:       len(o.Validation.Issues),
		WarningCount:     len(o.Validation.Warnings),
		Regenerated:      o.Attempts > 1,
	})
}
