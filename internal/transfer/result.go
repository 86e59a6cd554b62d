package transfer

// Outcome is the terminal state of a single file (or failed directory
// listing) within one run.
type Outcome string

const (
	OutcomeCopied  Outcome = "copied"
	OutcomeSkipped Outcome = "skipped-exists"
	OutcomeFailed  Outcome = "failed"
)

// Result records what happened to one remote path during a mirror run.
type Result struct {
	RemotePath string
	LocalPath  string
	Bytes      int64
	Outcome    Outcome
	Err        error
}

// Summarize counts results per outcome.
func Summarize(results []Result) (copied, skipped, failed int) {
	for _, r := range results {
		switch r.Outcome {
		case OutcomeCopied:
			copied++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return copied, skipped, failed
}

// TotalBytes sums the bytes of successfully copied files.
func TotalBytes(results []Result) int64 {
	var total int64
	for _, r := range results {
		if r.Outcome == OutcomeCopied {
			total += r.Bytes
		}
	}
	return total
}
