package dotenv

// Status classifies the outcome of a load.
type Status string

const (
	// StatusNotFound means no candidate file exists. It is not an error.
	StatusNotFound Status = "not_found"
	// StatusReadFailed means a resolved file could not be read.
	StatusReadFailed Status = "read_failed"
	// StatusLoaded means at least one file was read and parsed.
	StatusLoaded Status = "loaded"
)

// Result describes a single load before it collapses to a plain map.
type Result struct {
	Mode       Mode
	Candidates []string
	// Files lists the files chosen for reading, in the order they were read.
	Files  []string
	Status Status
	// Err holds every read failure, wrapped with ErrReadFailed.
	Err  error
	Vars map[string]string
}

// Found reports whether any candidate file was resolved.
func (r Result) Found() bool {
	return len(r.Files) > 0
}
