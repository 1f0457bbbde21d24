// Package fixture holds the dataset served by the slow API.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/SergeyShmatok/postagg/shared/domain"
	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultDataset []byte

type Dataset struct {
	Authors []Author `yaml:"authors"`
	Posts   []Post   `yaml:"posts"`
}

type Author struct {
	Id     int64  `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
	// FailStatus makes /api/authors/{id} answer with this status instead of the author.
	FailStatus int `yaml:"fail_status"`
}

type Post struct {
	Id         int64       `yaml:"id"`
	AuthorId   int64       `yaml:"author_id"`
	Content    string      `yaml:"content"`
	Published  int64       `yaml:"published"`
	LikedByMe  bool        `yaml:"liked_by_me"`
	Likes      int         `yaml:"likes"`
	Attachment *Attachment `yaml:"attachment"`
	Comments   []Comment   `yaml:"comments"`
}

type Attachment struct {
	URL         string  `yaml:"url"`
	Description *string `yaml:"description"`
	Type        string  `yaml:"type"`
}

type Comment struct {
	Id        int64  `yaml:"id"`
	AuthorId  int64  `yaml:"author_id"`
	Content   string `yaml:"content"`
	Published int64  `yaml:"published"`
	LikedByMe bool   `yaml:"liked_by_me"`
	Likes     int    `yaml:"likes"`
}

// Store is an immutable, indexed view of a Dataset.
type Store struct {
	posts    []domain.Post
	comments map[domain.PostId][]domain.Comment
	authors  map[domain.AuthorId]Author
}

// Load reads the dataset at path, or the embedded default dataset when path is empty.
func Load(path string) (*Store, error) {
	data := defaultDataset
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("can't read fixture %s: %w", path, err)
		}
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("can't unmarshal fixture: %w", err)
	}
	return New(ds)
}

func New(ds Dataset) (*Store, error) {
	s := &Store{
		posts:    make([]domain.Post, 0, len(ds.Posts)),
		comments: make(map[domain.PostId][]domain.Comment, len(ds.Posts)),
		authors:  make(map[domain.AuthorId]Author, len(ds.Authors)),
	}

	for _, a := range ds.Authors {
		if _, dup := s.authors[a.Id]; dup {
			return nil, fmt.Errorf("duplicate author id %d", a.Id)
		}
		s.authors[a.Id] = a
	}

	for _, p := range ds.Posts {
		if _, dup := s.comments[p.Id]; dup {
			return nil, fmt.Errorf("duplicate post id %d", p.Id)
		}
		post := domain.Post{
			Id:        p.Id,
			AuthorId:  p.AuthorId,
			Content:   p.Content,
			Published: timestamp(p.Published),
			LikedByMe: p.LikedByMe,
			Likes:     p.Likes,
		}
		if p.Attachment != nil {
			post.Attachment = &domain.Attachment{
				URL:         p.Attachment.URL,
				Description: p.Attachment.Description,
				Type:        domain.AttachmentType(p.Attachment.Type),
			}
		}
		s.posts = append(s.posts, post)

		comments := make([]domain.Comment, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, domain.Comment{
				Id:        c.Id,
				PostId:    p.Id,
				AuthorId:  c.AuthorId,
				Content:   c.Content,
				Published: timestamp(c.Published),
				LikedByMe: c.LikedByMe,
				Likes:     c.Likes,
			})
		}
		s.comments[p.Id] = comments
	}
	return s, nil
}

func (s *Store) Posts() []domain.Post {
	return s.posts
}

// Comments returns the comments of postId and whether the post exists.
func (s *Store) Comments(postId domain.PostId) ([]domain.Comment, bool) {
	c, ok := s.comments[postId]
	return c, ok
}

// Author returns the author, the configured failure status (0 if none), and whether the author exists.
func (s *Store) Author(authorId domain.AuthorId) (domain.Author, int, bool) {
	a, ok := s.authors[authorId]
	if !ok {
		return domain.Author{}, 0, false
	}
	return domain.Author{Id: a.Id, Name: a.Name, Avatar: a.Avatar}, a.FailStatus, true
}

func timestamp(secs int64) domain.Timestamp {
	return domain.Timestamp{Time: time.Unix(secs, 0).UTC()}
}
