package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Author struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         string `json:"role,omitempty"`
}

type DataPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Post mirrors the server's JSON. Variant fields are empty unless Type
// selects them.
type Post struct {
	ID             string      `json:"id,omitempty"`
	Slug           string      `json:"slug,omitempty"`
	Type           string      `json:"type,omitempty"`
	Title          string      `json:"title"`
	Excerpt        string      `json:"excerpt,omitempty"`
	Content        string      `json:"content,omitempty"`
	FullContent    string      `json:"fullContent,omitempty"`
	ImageURL       string      `json:"imageUrl,omitempty"`
	Category       string      `json:"category,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	ReadTime       int         `json:"readTime,omitempty"`
	PublishDate    *time.Time  `json:"publishDate,omitempty"`
	Author         *Author     `json:"author,omitempty"`
	Views          int64       `json:"views,omitempty"`
	IsDraft        bool        `json:"isDraft,omitempty"`
	SEOTitle       string      `json:"seoTitle,omitempty"`
	SEODescription string      `json:"seoDescription,omitempty"`
	MarketImpact   string      `json:"marketImpact,omitempty"`
	DataPoints     []DataPoint `json:"dataPoints,omitempty"`
	Topic          string      `json:"topic,omitempty"`
	AuthorTitle    string      `json:"authorTitle,omitempty"`
	CommentsCount  int         `json:"commentsCount,omitempty"`
	CreatedAt      *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time  `json:"updatedAt,omitempty"`
}

type PostFilters struct {
	Tag      string
	Type     string
	Category string
	Limit    int
	Skip     int
}

type PostPage struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
	Limit int    `json:"limit"`
	Skip  int    `json:"skip"`
}

type postEnvelope struct {
	Post *Post `json:"post"`
}

type postList struct {
	Posts []Post `json:"posts"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  *Author `json:"user"`
}

// Login authenticates and stores the token in the client's session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.session.Login(resp.Token, resp.User)
	return &resp, nil
}

func (c *Client) ListPosts(ctx context.Context, f PostFilters) (*PostPage, error) {
	q := url.Values{}
	setQuery(q, "tag", f.Tag)
	setQuery(q, "type", f.Type)
	setQuery(q, "category", f.Category)
	setQueryInt(q, "limit", f.Limit)
	setQueryInt(q, "skip", f.Skip)

	var page PostPage
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/posts", Query: q}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPostBySlug counts as a view on the server.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return c.getPost(ctx, "/posts/slug/"+url.PathEscape(slug))
}

func (c *Client) GetPostByID(ctx context.Context, id string) (*Post, error) {
	return c.getPost(ctx, "/posts/id/"+url.PathEscape(id))
}

func (c *Client) getPost(ctx context.Context, path string) (*Post, error) {
	var env postEnvelope
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: path}, &env); err != nil {
		return nil, err
	}
	return env.Post, nil
}

func (c *Client) Popular(ctx context.Context, limit int) ([]Post, error) {
	return c.listPosts(ctx, "/posts/popular", limitQuery(limit))
}

func (c *Client) Latest(ctx context.Context, limit int) ([]Post, error) {
	return c.listPosts(ctx, "/posts/latest", limitQuery(limit))
}

func (c *Client) Related(ctx context.Context, postID string, limit int) ([]Post, error) {
	return c.listPosts(ctx, "/posts/"+url.PathEscape(postID)+"/related", limitQuery(limit))
}

func (c *Client) ByAuthor(ctx context.Context, authorID, excludeID string, limit int) ([]Post, error) {
	q := limitQuery(limit)
	setQuery(q, "exclude", excludeID)
	return c.listPosts(ctx, "/posts/author/"+url.PathEscape(authorID), q)
}

func (c *Client) Search(ctx context.Context, text string) ([]Post, error) {
	q := url.Values{}
	setQuery(q, "q", text)
	return c.listPosts(ctx, "/posts/search", q)
}

func (c *Client) listPosts(ctx context.Context, path string, q url.Values) ([]Post, error) {
	var list postList
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: q}, &list); err != nil {
		return nil, err
	}
	return list.Posts, nil
}

func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var resp struct {
		Tags []string `json:"tags"`
	}
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/tags"}, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/categories"}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	var created Post
	if err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/posts", Body: post}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePost sends only the keys present in patch.
func (c *Client) UpdatePost(ctx context.Context, id string, patch map[string]interface{}) (*Post, error) {
	var updated Post
	if err := c.Do(ctx, Request{Method: http.MethodPut, Path: "/posts/" + url.PathEscape(id), Body: patch}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: "/posts/" + url.PathEscape(id)}, nil)
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	setQueryInt(q, "limit", limit)
	return q
}

func setQuery(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setQueryInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
