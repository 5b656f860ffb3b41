package crossref

// worksResponse mirrors the subset of the Crossref works API response the
// mapper consumes.
type worksResponse struct {
	Message struct {
		Items []workItem `json:"items"`
	} `json:"message"`
}

type workItem struct {
	DOI             string     `json:"DOI"`
	Title           []string   `json:"title"`
	ContainerTitle  []string   `json:"container-title"`
	Author          []workName `json:"author"`
	PublishedPrint  *dateParts `json:"published-print,omitempty"`
	PublishedOnline *dateParts `json:"published-online,omitempty"`
}

type workName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type dateParts struct {
	DateParts [][]int `json:"date-parts"`
}

// year returns the first date-part year, or 0.
func (d *dateParts) year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}
