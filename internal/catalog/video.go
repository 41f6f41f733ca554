package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

// Video describes a single catalog entry. The catalog is a static fixture
// set; entries are immutable after process start.
type Video struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ChannelName     string `json:"channelName"`
	ChannelImageURL string `json:"channelImageUrl"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	VideoURL        string `json:"videoUrl"`
	Views           string `json:"views"`
	Likes           string `json:"likes"`
	UploadTime      string `json:"uploadTime"`
	Duration        string `json:"duration"`
}

// Videos returns all catalog entries in fixture order.
func Videos() []Video {
	out := make([]Video, len(videos))
	copy(out, videos)
	return out
}

// VideoByID looks up a single video.
func VideoByID(id string) (Video, bool) {
	for _, v := range videos {
		if v.ID == id {
			return v, true
		}
	}
	return Video{}, false
}

// Related returns up to n other videos for the watch-page sidebar,
// excluding the given id.
func Related(id string, n int) []Video {
	var out []Video
	for _, v := range videos {
		if v.ID == id {
			continue
		}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

var youtubeIDPattern = regexp.MustCompile(`(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// YouTubeID extracts the 11-character external player id from a watch URL.
func YouTubeID(videoURL string) (string, bool) {
	if _, err := url.Parse(videoURL); err != nil {
		return "", false
	}
	m := youtubeIDPattern.FindStringSubmatch(videoURL)
	if m == nil || len(m[2]) != 11 {
		return "", false
	}
	return m[2], true
}

// ChannelVideos returns all videos published by the named channel.
func ChannelVideos(channelName string) []Video {
	var out []Video
	for _, v := range videos {
		if strings.EqualFold(v.ChannelName, channelName) {
			out = append(out, v)
		}
	}
	return out
}

var videos = []Video{
	{
		ID:              "1",
		Title:           "Complete Next.js Tutorial for Beginners - Learn Next.js in 2024",
		Description:     "Master Next.js from the basics to advanced concepts in this comprehensive tutorial. Learn routing, data fetching, server components, and more.",
		ChannelName:     "Code with Mosh",
		ChannelImageURL: "/avatars/channel1.jpg",
		ThumbnailURL:    "/thumbnails/nextjs-tutorial.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=ZVnjOPwW4ZA",
		Views:           "1.2M",
		Likes:           "85K",
		UploadTime:      "2 months ago",
		Duration:        "1:24:36",
	},
	{
		ID:              "2",
		Title:           "React JS Crash Course 2024 - Build 5 Projects in a Week",
		Description:     "Learn React JS through building 5 practical projects. Perfect for beginners and intermediate developers looking to improve their React skills.",
		ChannelName:     "The Net Ninja",
		ChannelImageURL: "/avatars/channel2.jpg",
		ThumbnailURL:    "/thumbnails/react-crash-course.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=4UZrsTqkcW4",
		Views:           "845K",
		Likes:           "42K",
		UploadTime:      "3 weeks ago",
		Duration:        "48:22",
	},
	{
		ID:              "3",
		Title:           "Learn Python in 6 Hours - Full Course for Beginners [2024]",
		Description:     "A complete Python tutorial covering all the fundamentals. Learn variables, data types, functions, OOP, file handling, and more in this comprehensive course.",
		ChannelName:     "freeCodeCamp",
		ChannelImageURL: "/avatars/channel4.jpg",
		ThumbnailURL:    "/thumbnails/python-course.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=_uQrJ0TkZlc",
		Views:           "3.4M",
		Likes:           "125K",
		UploadTime:      "5 months ago",
		Duration:        "6:12:47",
	},
	{
		ID:              "4",
		Title:           "Build a Full Stack E-Commerce Application with Stripe Payments",
		Description:     "Learn how to build a complete e-commerce store with user authentication, product catalog, shopping cart, and Stripe payment integration.",
		ChannelName:     "Traversy Media",
		ChannelImageURL: "/avatars/channel3.jpg",
		ThumbnailURL:    "/thumbnails/ecommerce-app.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=mI_-1tbIXQI",
		Views:           "567K",
		Likes:           "38K",
		UploadTime:      "1 month ago",
		Duration:        "2:34:18",
	},
	{
		ID:              "5",
		Title:           "TypeScript Tutorial for Beginners: Your Complete Guide",
		Description:     "Learn TypeScript from scratch. This tutorial covers types, interfaces, generics, and how to integrate TypeScript with React, Node, and other frameworks.",
		ChannelName:     "Academind",
		ChannelImageURL: "/avatars/channel5.jpg",
		ThumbnailURL:    "/thumbnails/typescript-tutorial.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=BwuLxPH8IDs",
		Views:           "721K",
		Likes:           "45K",
		UploadTime:      "2 months ago",
		Duration:        "1:54:12",
	},
	{
		ID:              "6",
		Title:           "How to Build a REST API with Node.js and Express",
		Description:     "Create a complete REST API using Node.js and Express. Learn about routes, controllers, middleware, MongoDB integration, and authentication.",
		ChannelName:     "Code with Mosh",
		ChannelImageURL: "/avatars/channel1.jpg",
		ThumbnailURL:    "/thumbnails/nodejs-api.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=pKd0Rpw7O48",
		Views:           "982K",
		Likes:           "56K",
		UploadTime:      "4 months ago",
		Duration:        "1:12:45",
	},
	{
		ID:              "7",
		Title:           "CSS Grid Tutorial: Responsive Design Made Easy",
		Description:     "Master CSS Grid layout to create modern, responsive websites. Learn grid templates, areas, gaps, and how to create complex layouts with clean code.",
		ChannelName:     "The Net Ninja",
		ChannelImageURL: "/avatars/channel2.jpg",
		ThumbnailURL:    "/thumbnails/css-grid.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=jV8B24rSN5o",
		Views:           "432K",
		Likes:           "31K",
		UploadTime:      "6 weeks ago",
		Duration:        "42:18",
	},
	{
		ID:              "8",
		Title:           "MERN Stack Crash Course with Authentication",
		Description:     "Build a full-stack application with MongoDB, Express, React, and Node.js. Implement JWT authentication, protected routes, and CRUD operations.",
		ChannelName:     "Traversy Media",
		ChannelImageURL: "/avatars/channel3.jpg",
		ThumbnailURL:    "/thumbnails/mern-stack.jpg",
		VideoURL:        "https://www.youtube.com/watch?v=7CqJlxBYj-M",
		Views:           "1.1M",
		Likes:           "62K",
		UploadTime:      "3 months ago",
		Duration:        "1:48:36",
	},
}
