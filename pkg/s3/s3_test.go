package s3

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t,
		"http://localhost:9000/newsdesk-images/posts/a/1.png",
		ObjectURL("http://localhost:9000", "us-east-1", true, "newsdesk-images", "posts/a/1.png"))

	assert.Equal(t,
		"https://minio.example.com/newsdesk-images/posts/a/1.png",
		ObjectURL("https://minio.example.com", "", false, "newsdesk-images", "posts/a/1.png"))

	assert.Equal(t,
		"https://newsdesk-images.s3.eu-west-1.amazonaws.com/posts/a/1.png",
		ObjectURL("", "eu-west-1", false, "newsdesk-images", "posts/a/1.png"))

	assert.Equal(t,
		"https://newsdesk-images.s3.us-east-1.amazonaws.com/k",
		ObjectURL("", "", false, "newsdesk-images", "k"))
}

func TestImageKey(t *testing.T) {
	key := ImageKey("author-1", "Chart.PNG")

	assert.Regexp(t, regexp.MustCompile(`^posts/author-1/[0-9a-f-]{36}\.png$`), key)
	assert.NotEqual(t, key, ImageKey("author-1", "Chart.PNG"))
}
