package catalog

// QuizQuestion is a single multiple-choice question. CorrectAnswer indexes
// into Options.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Quiz is a set of questions shown near TimeToShow seconds into a video.
type Quiz struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	TimeToShow float64        `json:"timeToShow"`
	Questions  []QuizQuestion `json:"questions"`
}

// QuizzesFor returns quizzes for a video id, falling back to "default".
func QuizzesFor(videoID string) []Quiz {
	quizzes, ok := videoQuizzes[videoID]
	if !ok {
		quizzes = videoQuizzes["default"]
	}
	out := make([]Quiz, len(quizzes))
	copy(out, quizzes)
	return out
}

var videoQuizzes = map[string][]Quiz{
	"1": {
		{
			ID:         "1",
			Title:      "Understanding Next.js Basics",
			TimeToShow: 110,
			Questions: []QuizQuestion{
				{
					ID:   "1-1",
					Text: "What is Next.js primarily used for?",
					Options: []string{
						"Mobile app development",
						"React-based web applications with server-side rendering",
						"Database management",
						"Backend API development",
					},
					CorrectAnswer: 1,
					Explanation:   "Next.js is a React framework that enables server-side rendering and generates static websites.",
				},
				{
					ID:   "1-2",
					Text: "Which company developed Next.js?",
					Options: []string{
						"Facebook",
						"Google",
						"Vercel",
						"Amazon",
					},
					CorrectAnswer: 2,
					Explanation:   "Next.js was developed by Vercel (formerly Zeit).",
				},
			},
		},
		{
			ID:         "2",
			Title:      "Next.js Project Structure",
			TimeToShow: 340,
			Questions: []QuizQuestion{
				{
					ID:   "2-1",
					Text: "Which folder contains the pages in a standard Next.js project?",
					Options: []string{
						"/src/pages",
						"/pages",
						"/views",
						"Either /pages or /app depending on the routing approach",
					},
					CorrectAnswer: 3,
					Explanation:   "Next.js uses either the pages directory (Pages Router) or the app directory (App Router).",
				},
				{
					ID:   "2-2",
					Text: "How do you create a dynamic route in Next.js?",
					Options: []string{
						"Using a file named [param].js",
						"Using the <Route> component",
						"Creating a route.config.js file",
						"Using Express.js routing",
					},
					CorrectAnswer: 0,
					Explanation:   "In Next.js, dynamic routes are created using square brackets in the filename, like [id].js.",
				},
			},
		},
	},
	"2": {
		{
			ID:         "1",
			Title:      "React Fundamentals Quiz",
			TimeToShow: 160,
			Questions: []QuizQuestion{
				{
					ID:   "1-1",
					Text: "What is JSX?",
					Options: []string{
						"A JavaScript library",
						"A syntax extension for JavaScript that looks similar to HTML",
						"A build tool for React",
						"A state management solution",
					},
					CorrectAnswer: 1,
					Explanation:   "JSX is a syntax extension for JavaScript that allows you to write HTML-like code in your JavaScript files.",
				},
				{
					ID:   "1-2",
					Text: "Which hook is used to perform side effects in a function component?",
					Options: []string{
						"useState",
						"useContext",
						"useEffect",
						"useReducer",
					},
					CorrectAnswer: 2,
					Explanation:   "useEffect is used for side effects like data fetching, subscriptions, or manually changing the DOM.",
				},
			},
		},
		{
			ID:         "2",
			Title:      "Components & Props Quiz",
			TimeToShow: 340,
			Questions: []QuizQuestion{
				{
					ID:   "2-1",
					Text: "How do you pass data from a parent to a child component?",
					Options: []string{
						"Using global state",
						"Using props",
						"Using context API only",
						"Using Redux",
					},
					CorrectAnswer: 1,
					Explanation:   "Props (short for properties) are used to pass data from parent to child components.",
				},
				{
					ID:   "2-2",
					Text: "What is the correct way to render a list of items in React?",
					Options: []string{
						"Using a for loop in JSX",
						"Using the map() method and providing a key prop",
						"Using the forEach() method",
						"Using the items.render() method",
					},
					CorrectAnswer: 1,
					Explanation:   "The map() method is commonly used to render lists in React, and each item should have a unique key prop.",
				},
			},
		},
	},
	"3": {
		{
			ID:         "1",
			Title:      "Python Basics Quiz",
			TimeToShow: 850,
			Questions: []QuizQuestion{
				{
					ID:   "1-1",
					Text: "Which of the following is NOT a Python data type?",
					Options: []string{
						"List",
						"Dictionary",
						"Tuple",
						"Array",
					},
					CorrectAnswer: 3,
					Explanation:   "While Python has lists, dictionaries, and tuples, it does not have a built-in array type. The NumPy library provides array functionality.",
				},
				{
					ID:   "1-2",
					Text: "What is the correct way to comment multiple lines in Python?",
					Options: []string{
						"Using # at the beginning of each line",
						"Using /* and */ to wrap the comments",
						"Using triple quotes (\"\"\" or ''')",
						"Using <!-- and --> tags",
					},
					CorrectAnswer: 2,
					Explanation:   "Triple quotes (\"\"\" or ''') are used for multi-line strings and can be used as multi-line comments in Python.",
				},
			},
		},
	},
	"default": {
		{
			ID:         "1",
			Title:      "Topic Understanding Check",
			TimeToShow: 110,
			Questions: []QuizQuestion{
				{
					ID:   "1-1",
					Text: "What is the primary purpose of React's useEffect hook?",
					Options: []string{
						"To update component state",
						"To handle side effects in functional components",
						"To create new components dynamically",
						"To replace Redux for state management",
					},
					CorrectAnswer: 1,
					Explanation:   "The useEffect hook is used to perform side effects in functional components, such as data fetching, DOM manipulation, or subscriptions.",
				},
				{
					ID:   "1-2",
					Text: "Which of the following is NOT a benefit of Next.js?",
					Options: []string{
						"Server-side rendering",
						"Automatic code splitting",
						"Built-in CSS modules",
						"Direct database access",
					},
					CorrectAnswer: 3,
					Explanation:   "Next.js does not provide direct database access. You still need to set up your own database connections and APIs.",
				},
			},
		},
		{
			ID:         "2",
			Title:      "Advanced Concepts Quiz",
			TimeToShow: 300,
			Questions: []QuizQuestion{
				{
					ID:   "2-1",
					Text: "What is the virtual DOM in React?",
					Options: []string{
						"A way to directly manipulate the browser DOM",
						"A lightweight copy of the real DOM that React uses for performance optimization",
						"A special browser feature only available in Chrome",
						"A third-party library for DOM manipulation",
					},
					CorrectAnswer: 1,
					Explanation:   "The virtual DOM is a lightweight JavaScript representation of the real DOM that React uses to optimize updates and improve performance.",
				},
				{
					ID:   "2-2",
					Text: "Which statement about React hooks is NOT true?",
					Options: []string{
						"Hooks can only be used in functional components",
						"Hooks must be called at the top level, not inside loops or conditions",
						"You can create your own custom hooks",
						"Hooks can be used in class components",
					},
					CorrectAnswer: 3,
					Explanation:   "Hooks can only be used in functional components, not in class components.",
				},
			},
		},
	},
}
