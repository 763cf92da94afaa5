package download

type Request struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	URL      string `json:"url"`
	Format   string `json:"format"`
}
