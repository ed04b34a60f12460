// Package prompt renders the model prompt and parses the model reply.
//
// Build and ParseMessages share one output contract: the template asks for
// "Message <N>: <text>" lines and the parser splits on exactly that marker.
// Change both together.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
)

const (
	// MaxPostsPerSide is how many posts of each party reach the prompt.
	MaxPostsPerSide = 5
	// PostExcerptLen is the number of characters kept from a post body.
	PostExcerptLen = 200
	// MessageCount is how many candidate messages the model is asked for.
	MessageCount = 3

	noRole   = "N/A"
	ellipsis = "..."
)

// Input is everything the assembler needs for one request.
type Input struct {
	Sender        domain.Profile
	Receiver      domain.Profile
	SenderPosts   []domain.Post
	ReceiverPosts []domain.Post
	Objective     string
	Challenge     string // optional
	Style         string // optional
}

// Build renders the prompt for in. Output is byte-identical for identical input.
func Build(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d distinct, professional and friendly icebreaker messages from %s to %s.",
		MessageCount, in.Sender.FirstName, in.Receiver.FirstName)

	b.WriteString("\n\n**Sender's Information:**")
	writeIdentity(&b, in.Sender)
	writePosts(&b, in.SenderPosts)

	b.WriteString("\n\n**Receiver's Information:**")
	writeIdentity(&b, in.Receiver)
	fmt.Fprintf(&b, "\n- Summary: %s", in.Receiver.Summary)
	writePosts(&b, in.ReceiverPosts)

	fmt.Fprintf(&b, "\n\n**Objective:** %s", in.Objective)
	if in.Challenge != "" {
		fmt.Fprintf(&b, "\n\n**Challenge:** %s", in.Challenge)
	}
	if in.Style != "" {
		fmt.Fprintf(&b, "\n\n**Writing Style:** %s", in.Style)
	}

	b.WriteString(instructions)
	return b.String()
}

// instructions is the fixed output contract consumed by ParseMessages.
var instructions = fmt.Sprintf(`

Write exactly %d different messages to start the conversation. Each message must stand on its own.
Format your answer strictly as follows, one message per line, with nothing before or after:
Message 1: <text of the first message>
Message 2: <text of the second message>
Message 3: <text of the third message>
Do not add titles, numbering other than the "Message N:" prefix, quotes, or formatting characters such as asterisks, underscores or any other markdown.`,
	MessageCount)

func writeIdentity(b *strings.Builder, p domain.Profile) {
	fmt.Fprintf(b, "\n- Name: %s %s", p.FirstName, p.LastName)
	fmt.Fprintf(b, "\n- Headline: %s", p.Headline)

	role := noRole
	if pos, ok := p.CurrentPosition(); ok && pos.Title != "" {
		role = pos.Title
	}
	fmt.Fprintf(b, "\n- Current Role: %s", role)
}

func writePosts(b *strings.Builder, posts []domain.Post) {
	b.WriteString("\n- Recent Posts:")
	if len(posts) > MaxPostsPerSide {
		posts = posts[:MaxPostsPerSide]
	}
	for i, post := range posts {
		fmt.Fprintf(b, "\n  - Post %d: \"%s%s\" (Likes: %d)", i+1, excerpt(post.Text), ellipsis, post.LikeCount)
	}
}

// excerpt keeps the first PostExcerptLen characters (runes, not bytes).
func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= PostExcerptLen {
		return s
	}
	return string(r[:PostExcerptLen])
}
