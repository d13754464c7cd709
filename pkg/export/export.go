package export

// Dataset defines tabular export content. Meta lines are rendered between the
// title and the table in formats that support them.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	Meta    []string
	Footer  []map[string]string
}
