package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var statBlogs = []Blog{
	{ID: 1, Title: "A Brief History of Time", Author: "Stephen Hawking", URL: "https://en.wikipedia.org/wiki/A_Brief_History_of_Time", Likes: 1001},
	{ID: 2, Title: "Doraemon", Author: "Fujiko Fujio", URL: "https://en.wikipedia.org/wiki/Doraemon_(character)", Likes: 1000},
	{ID: 3, Title: "The Universe in a Nutshell", Author: "Stephen Hawking", URL: "https://en.wikipedia.org/wiki/The_Universe_in_a_Nutshell", Likes: 2},
}

func TestTotalLikes(t *testing.T) {
	assert.Equal(t, 0, TotalLikes(nil))
	assert.Equal(t, 1001, TotalLikes(statBlogs[:1]))
	assert.Equal(t, 2003, TotalLikes(statBlogs))
}

func TestFavoriteBlog(t *testing.T) {
	assert.Nil(t, FavoriteBlog(nil))

	favorite := FavoriteBlog(statBlogs)
	assert.NotNil(t, favorite)
	assert.Equal(t, "A Brief History of Time", favorite.Title)

	// ties go to the earliest blog
	tied := []Blog{
		{Title: "first", Likes: 5},
		{Title: "second", Likes: 5},
	}
	assert.Equal(t, "first", FavoriteBlog(tied).Title)
}

func TestMostBlogs(t *testing.T) {
	assert.Nil(t, MostBlogs(nil))

	top := MostBlogs(statBlogs)
	assert.NotNil(t, top)
	assert.Equal(t, AuthorBlogs{Author: "Stephen Hawking", Blogs: 2}, *top)
}

func TestMostLikes(t *testing.T) {
	assert.Nil(t, MostLikes(nil))

	top := MostLikes(statBlogs)
	assert.NotNil(t, top)
	assert.Equal(t, AuthorLikes{Author: "Stephen Hawking", Likes: 1003}, *top)
}
