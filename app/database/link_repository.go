package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLLinkRepository handles database operations for links
type SQLLinkRepository struct {
	db *DB
}

var _ LinkRepository = (*SQLLinkRepository)(nil)

func NewLinkRepository(db *DB) *SQLLinkRepository {
	return &SQLLinkRepository{db: db}
}

func (r *SQLLinkRepository) CreateLink(link *Link) error {
	_, err := r.db.Exec(`
		INSERT INTO links (
			id, url, domain, content_type, status, title,
			ai_summary, ai_category, ai_tags, ai_reading_time, ai_language, ai_sentiment,
			user_description, user_category, user_tags, user_reading_time,
			word_count, scraping_failed, ai_analysis_failed,
			author, published_at, site_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, link.ID, link.URL, link.Domain, link.ContentType, link.Status, link.Title,
		link.AISummary, link.AICategory, marshalTags(link.AITags), link.AIReadingTime,
		link.AILanguage, link.AISentiment,
		link.UserDescription, link.UserCategory, marshalTags(link.UserTags), link.UserReadingTime,
		link.WordCount, link.ScrapingFailed, link.AIAnalysisFailed,
		link.Author, link.PublishedAt, link.SiteName)

	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}

	return nil
}

func (r *SQLLinkRepository) GetLink(id string) (*Link, error) {
	row := r.db.QueryRow(linkSelect+` WHERE id = ?`, id)
	return scanLink(row)
}

func (r *SQLLinkRepository) GetPendingLink(id string) (*Link, error) {
	row := r.db.QueryRow(linkSelect+` WHERE id = ? AND status = ?`, id, StatusPending)
	return scanLink(row)
}

func (r *SQLLinkRepository) UpdateConfirmation(id, description, category string, tags []string, readingTime int, publish bool) error {
	status := StatusPending
	if publish {
		status = StatusPublished
	}

	result, err := r.db.Exec(`
		UPDATE links
		SET user_description = ?, user_category = ?, user_tags = ?,
		    user_reading_time = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, description, category, marshalTags(tags), readingTime, status, id)

	if err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *SQLLinkRepository) GetLinkCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM links`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}

func (r *SQLLinkRepository) GetLinkCountByStatus(status string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM links WHERE status = ?`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count links by status: %w", err)
	}
	return count, nil
}

const linkSelect = `
	SELECT id, url, domain, content_type, status, title,
	       ai_summary, ai_category, ai_tags, ai_reading_time, ai_language, ai_sentiment,
	       user_description, user_category, user_tags, user_reading_time,
	       word_count, scraping_failed, ai_analysis_failed,
	       author, published_at, site_name,
	       created_at, updated_at
	FROM links`

func scanLink(row *sql.Row) (*Link, error) {
	var link Link
	var aiTags, userTags string

	err := row.Scan(&link.ID, &link.URL, &link.Domain, &link.ContentType, &link.Status, &link.Title,
		&link.AISummary, &link.AICategory, &aiTags, &link.AIReadingTime, &link.AILanguage, &link.AISentiment,
		&link.UserDescription, &link.UserCategory, &userTags, &link.UserReadingTime,
		&link.WordCount, &link.ScrapingFailed, &link.AIAnalysisFailed,
		&link.Author, &link.PublishedAt, &link.SiteName,
		&link.CreatedAt, &link.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan link: %w", err)
	}

	link.AITags = unmarshalTags(aiTags)
	link.UserTags = unmarshalTags(userTags)

	return &link, nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func unmarshalTags(data string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return nil
	}
	return tags
}
