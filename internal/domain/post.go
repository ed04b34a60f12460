package domain

// Post is one item of a profile's recent activity.
// Only Text and LikeCount reach the prompt; the rest is kept for logging and future use.
type Post struct {
	Text               string
	TotalReactionCount int
	LikeCount          int
	CommentsCount      int
	RepostsCount       int
	PostURL            string
	PostedDate         string
	Author             Author
	ContentType        string
}

// Author is the post author reference returned by the provider.
type Author struct {
	ID        int64
	FirstName string
	LastName  string
	Headline  string
	Username  string
	URL       string
}
