package database

type LinkRepository interface {
	CreateLink(link *Link) error
	GetLink(id string) (*Link, error)
	GetPendingLink(id string) (*Link, error)

	UpdateConfirmation(id, description, category string, tags []string, readingTime int, publish bool) error

	GetLinkCount() (int, error)
	GetLinkCountByStatus(status string) (int, error)
}
