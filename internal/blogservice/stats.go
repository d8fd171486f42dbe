package blogservice

// List statistics over a slice of blogs. All functions treat an empty slice
// as a nil/zero result rather than an error.

func TotalLikes(blogs []Blog) int {
	var total int
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. Ties go to the earliest
// blog in the slice.
func FavoriteBlog(blogs []Blog) *Blog {
	var favorite *Blog
	for i := range blogs {
		if favorite == nil || favorite.Likes < blogs[i].Likes {
			favorite = &blogs[i]
		}
	}
	return favorite
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// MostBlogs returns the author with the largest number of blogs. Ties go to
// whichever author reached the winning count first in slice order.
func MostBlogs(blogs []Blog) *AuthorBlogs {
	counts := make(map[string]int)

	var top *AuthorBlogs
	for _, b := range blogs {
		counts[b.Author]++
		if top == nil || counts[b.Author] > top.Blogs {
			top = &AuthorBlogs{Author: b.Author, Blogs: counts[b.Author]}
		}
	}
	return top
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// MostLikes returns the author whose blogs have the most likes in total.
func MostLikes(blogs []Blog) *AuthorLikes {
	likes := make(map[string]int)

	var top *AuthorLikes
	for _, b := range blogs {
		likes[b.Author] += b.Likes
		if top == nil || likes[b.Author] > top.Likes {
			top = &AuthorLikes{Author: b.Author, Likes: likes[b.Author]}
		}
	}
	return top
}
