package domain

import (
	"fmt"
	"strings"
)

// for debug
func (p *PostWithComments) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[post:%d, author:%d, comments:[", p.Post.Id, p.Author.Id)
	for i, c := range p.Comments {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", c.Id)
		if i < len(p.CommentAuthors) {
			fmt.Fprintf(&b, " by %d", p.CommentAuthors[i].Id)
		}
	}
	b.WriteString("]]")
	return b.String()
}
