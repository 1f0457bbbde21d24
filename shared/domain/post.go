package domain

type Post struct {
	Id         PostId      `json:"id"`
	AuthorId   AuthorId    `json:"authorId"`
	Content    string      `json:"content"`
	Published  Timestamp   `json:"published"`
	LikedByMe  bool        `json:"likedByMe"`
	Likes      int         `json:"likes"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

type Author struct {
	Id     AuthorId `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar"`
}

type Comment struct {
	Id        CommentId `json:"id"`
	PostId    PostId    `json:"postId"`
	AuthorId  AuthorId  `json:"authorId"`
	Content   string    `json:"content"`
	Published Timestamp `json:"published"`
	LikedByMe bool      `json:"likedByMe"`
	Likes     int       `json:"likes"`
}

// PostWithComments is built once every dependency of a post is resolved.
// CommentAuthors[i] is the author of Comments[i].
type PostWithComments struct {
	Post           Post      `json:"post"`
	Comments       []Comment `json:"comments"`
	Author         Author    `json:"author"`
	CommentAuthors []Author  `json:"commentAuthors"`
}
