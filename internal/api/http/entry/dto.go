package entry

import "daybook/internal/journal"

// entryView is one entry as reported to the client. A per-entry read failure
// keeps the metadata and carries the failure in Error instead of aborting the
// whole listing.
type entryView struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Tags      []string `json:"tags,omitempty"`
	Content   string   `json:"content,omitempty"`
	Encrypted bool     `json:"encrypted,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type listInput struct {
	Tag string `query:"tag" doc:"Only entries carrying this tag"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Count   int         `json:"count"`
	Entries []entryView `json:"entries"`
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Type    string   `json:"type" doc:"One of diary, notes, todo, quote"`
	Content string   `json:"content" minLength:"1" doc:"Entry body"`
	Tags    []string `json:"tags,omitempty" doc:"Tags for lookup"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type exportInput struct {
	Format string `query:"format" enum:"json,markdown,text" default:"json" doc:"Export format"`
}

type exportOutput struct {
	Body exportResponse
}

type exportResponse struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

type searchInput struct {
	Query string `query:"q" minLength:"1" doc:"Substring or #tag query"`
}

type searchOutput struct {
	Body listResponse
}

type tagsOutput struct {
	Body tagsResponse
}

type tagsResponse struct {
	Tags map[string][]string `json:"tags" doc:"Tag to entry IDs"`
}

func viewOf(e journal.Entry, err error) entryView {
	v := entryView{
		ID:        e.ID,
		Type:      string(e.Type),
		Date:      e.Date,
		Time:      e.Time,
		Tags:      e.Tags,
		Content:   e.Content,
		Encrypted: e.Encrypted,
	}
	if err != nil {
		v.Content = ""
		v.Error = err.Error()
	}
	return v
}
