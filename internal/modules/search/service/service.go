package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const jobsIndex = "jobs"

// JobIndex keeps the full-text job index in sync with the store.
type JobIndex interface {
	Enabled() bool
	IndexJob(job *entity.Job) error
	IndexJobs(jobs []*entity.Job) error
	// Search returns matching job ids ordered by relevance.
	Search(ctx context.Context, query, blockchain string, limit int64) ([]uint, error)
}

type meiliJobIndex struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

// NewJobIndex returns a meilisearch backed index, or a no-op index when host
// is empty.
func NewJobIndex(host, apiKey string) JobIndex {
	if host == "" {
		log.Println("MEILISEARCH_HOST is not set, job search falls back to the database")
		return noopIndex{}
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	return newMeiliJobIndex(meilisearch.New(host, meilisearch.WithAPIKey(apiKey)))
}

func newMeiliJobIndex(client meilisearch.ServiceManager) *meiliJobIndex {
	s := &meiliJobIndex{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *meiliJobIndex) initIndex() {
	filterable := []any{"blockchain", "employer_id", "role"}
	if _, err := s.client.Index(jobsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update jobs filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(jobsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update jobs sortable attributes: %v", err)
	}
}

type meiliJobDoc struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Blockchain   string   `json:"blockchain"`
	Role         string   `json:"role"`
	EmployerID   uint     `json:"employer_id"`
	CreatedAt    int64    `json:"created_at"`
}

func (s *meiliJobIndex) Enabled() bool { return true }

// cleanText strips markup and collapses whitespace.
func (s *meiliJobIndex) cleanText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</li>", " ")

	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *meiliJobIndex) toDoc(job *entity.Job) meiliJobDoc {
	requirements := make([]string, 0, len(job.Requirements))
	for _, r := range job.Requirements {
		requirements = append(requirements, s.cleanText(r))
	}

	return meiliJobDoc{
		ID:           job.ID,
		Title:        s.cleanText(job.Title),
		Company:      s.cleanText(job.Company),
		Description:  s.cleanText(job.Description),
		Requirements: requirements,
		Blockchain:   job.Blockchain,
		Role:         job.Role,
		EmployerID:   job.EmployerID,
		CreatedAt:    job.CreatedAt.Unix(),
	}
}

func (s *meiliJobIndex) IndexJob(job *entity.Job) error {
	return s.IndexJobs([]*entity.Job{job})
}

func (s *meiliJobIndex) IndexJobs(jobs []*entity.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	docs := make([]meiliJobDoc, 0, len(jobs))
	for _, job := range jobs {
		docs = append(docs, s.toDoc(job))
	}

	task, err := s.client.Index(jobsIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index jobs: %w", err)
	}
	log.Printf("Indexed %d jobs, task id: %d", len(docs), task.TaskUID)
	return nil
}

func (s *meiliJobIndex) Search(ctx context.Context, query, blockchain string, limit int64) ([]uint, error) {
	req := &meilisearch.SearchRequest{
		Limit:                limit,
		AttributesToRetrieve: []string{"id"},
	}
	if blockchain != "" {
		req.Filter = fmt.Sprintf("blockchain = %s", strconv.Quote(blockchain))
	}

	raw, err := s.client.Index(jobsIndex).SearchRaw(query, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	var resp struct {
		Hits []struct {
			ID uint `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uint, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

type noopIndex struct{}

func (noopIndex) Enabled() bool { return false }

func (noopIndex) IndexJob(*entity.Job) error { return nil }

func (noopIndex) IndexJobs([]*entity.Job) error { return nil }

func (noopIndex) Search(context.Context, string, string, int64) ([]uint, error) {
	return nil, nil
}

func strPtr(s string) *string {
	return &s
}
