package catalog

// Chapter is a time range within a video. Per-video chapter lists are
// ordered, non-overlapping and cover the video contiguously.
type Chapter struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	TimeStart   float64 `json:"timeStart"`
	TimeEnd     float64 `json:"timeEnd"`
	Description string  `json:"description,omitempty"`
}

// ChaptersFor returns the chapter list for a video id, falling back to the
// "default" entry when no id-specific list exists.
func ChaptersFor(videoID string) []Chapter {
	chapters, ok := videoChapters[videoID]
	if !ok {
		chapters = videoChapters["default"]
	}
	out := make([]Chapter, len(chapters))
	copy(out, chapters)
	return out
}

// TotalDuration reports the known duration of a video as the end of its
// last chapter, or 0 for an empty list.
func TotalDuration(chapters []Chapter) float64 {
	if len(chapters) == 0 {
		return 0
	}
	return chapters[len(chapters)-1].TimeEnd
}

var videoChapters = map[string][]Chapter{
	"1": {
		{ID: "1", Title: "Introduction to Next.js", TimeStart: 0, TimeEnd: 120, Description: "What is Next.js and why should you use it?"},
		{ID: "2", Title: "Setting up a Next.js Project", TimeStart: 121, TimeEnd: 360, Description: "Installation and project structure explained"},
		{ID: "3", Title: "Routing in Next.js", TimeStart: 361, TimeEnd: 600, Description: "File-based routing system and how to use it"},
		{ID: "4", Title: "Data Fetching", TimeStart: 601, TimeEnd: 840, Description: "Various methods to fetch data in Next.js applications"},
		{ID: "5", Title: "Deployment & Optimization", TimeStart: 841, TimeEnd: 960, Description: "How to deploy your Next.js app and performance tips"},
	},
	"2": {
		{ID: "1", Title: "React Basics", TimeStart: 0, TimeEnd: 180, Description: "Introduction to React concepts and JSX"},
		{ID: "2", Title: "Components & Props", TimeStart: 181, TimeEnd: 360, Description: "Creating and styling React components"},
		{ID: "3", Title: "State & Hooks", TimeStart: 361, TimeEnd: 540, Description: "Using useState and useEffect hooks"},
		{ID: "4", Title: "Project 1: Todo App", TimeStart: 541, TimeEnd: 720, Description: "Building a complete todo application"},
		{ID: "5", Title: "Context API", TimeStart: 721, TimeEnd: 900, Description: "Managing global state with Context"},
		{ID: "6", Title: "Project 2: Shopping Cart", TimeStart: 901, TimeEnd: 1080, Description: "Building a shopping cart with context API"},
		{ID: "7", Title: "Deployment", TimeStart: 1081, TimeEnd: 1200, Description: "Deploying React apps to Vercel and Netlify"},
	},
	"3": {
		{ID: "1", Title: "Python Basics", TimeStart: 0, TimeEnd: 900, Description: "Variables, data types, and basic operations"},
		{ID: "2", Title: "Control Flow", TimeStart: 901, TimeEnd: 1800, Description: "If statements, loops, and conditional logic"},
		{ID: "3", Title: "Functions & Modules", TimeStart: 1801, TimeEnd: 3600, Description: "Creating and using functions and modules"},
		{ID: "4", Title: "Data Structures", TimeStart: 3601, TimeEnd: 5400, Description: "Lists, dictionaries, tuples, and sets"},
		{ID: "5", Title: "File Handling & Exceptions", TimeStart: 5401, TimeEnd: 7200, Description: "Reading/writing files and exception handling"},
		{ID: "6", Title: "Object-Oriented Python", TimeStart: 7201, TimeEnd: 9000, Description: "Classes, objects, inheritance, and polymorphism"},
		{ID: "7", Title: "Project: CLI App", TimeStart: 9001, TimeEnd: 10800, Description: "Building a command-line application"},
		{ID: "8", Title: "Next Steps", TimeStart: 10801, TimeEnd: 11567, Description: "Resources and further learning paths"},
	},
	"4": {
		{ID: "1", Title: "Project Overview", TimeStart: 0, TimeEnd: 180, Description: "Application architecture and technologies"},
		{ID: "2", Title: "Backend Setup", TimeStart: 181, TimeEnd: 600, Description: "Setting up Node.js, Express, and MongoDB"},
		{ID: "3", Title: "User Authentication", TimeStart: 601, TimeEnd: 1200, Description: "JWT authentication and protected routes"},
		{ID: "4", Title: "Product Management", TimeStart: 1201, TimeEnd: 1800, Description: "Creating the product catalog and admin interface"},
		{ID: "5", Title: "Shopping Cart", TimeStart: 1801, TimeEnd: 2400, Description: "Building the cart functionality with Redux"},
		{ID: "6", Title: "Checkout Process", TimeStart: 2401, TimeEnd: 3000, Description: "Creating the checkout flow with Stripe integration"},
		{ID: "7", Title: "Order Management", TimeStart: 3001, TimeEnd: 3600, Description: "Order processing and fulfillment features"},
		{ID: "8", Title: "Deployment", TimeStart: 3601, TimeEnd: 3858, Description: "Deploying the full-stack application"},
	},
	"5": {
		{ID: "1", Title: "TypeScript Introduction", TimeStart: 0, TimeEnd: 300, Description: "What is TypeScript and why use it?"},
		{ID: "2", Title: "Basic Types", TimeStart: 301, TimeEnd: 600, Description: "Number, string, boolean, array, tuple, and enum types"},
		{ID: "3", Title: "Interfaces & Types", TimeStart: 601, TimeEnd: 900, Description: "Defining and using interfaces and custom types"},
		{ID: "4", Title: "Functions", TimeStart: 901, TimeEnd: 1200, Description: "Function types, parameters, and return types"},
		{ID: "5", Title: "Classes & OOP", TimeStart: 1201, TimeEnd: 1500, Description: "Object-oriented programming with TypeScript"},
		{ID: "6", Title: "Generics", TimeStart: 1501, TimeEnd: 1800, Description: "Creating reusable components with generics"},
		{ID: "7", Title: "TypeScript with React", TimeStart: 1801, TimeEnd: 2100, Description: "Using TypeScript in React projects"},
		{ID: "8", Title: "Advanced Types", TimeStart: 2101, TimeEnd: 2400, Description: "Union types, intersection types, and type guards"},
		{ID: "9", Title: "Project: TypeScript App", TimeStart: 2401, TimeEnd: 2652, Description: "Building a complete application with TypeScript"},
	},
	"default": {
		{ID: "1", Title: "Introduction", TimeStart: 0, TimeEnd: 120, Description: "Overview of the course and what to expect"},
		{ID: "2", Title: "Key Concepts", TimeStart: 121, TimeEnd: 360, Description: "Fundamentals and core principles explained"},
		{ID: "3", Title: "Practical Examples", TimeStart: 361, TimeEnd: 600, Description: "Real-world application and demonstrations"},
		{ID: "4", Title: "Advanced Techniques", TimeStart: 601, TimeEnd: 840, Description: "In-depth analysis and advanced concepts"},
		{ID: "5", Title: "Summary & Conclusion", TimeStart: 841, TimeEnd: 960, Description: "Recap and next steps"},
	},
}
