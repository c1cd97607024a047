package websearch

import (
	"context"
	"fmt"
	"strings"
)

// Simulated is the offline provider used when no search key is
// configured. Output is keyed by topic keywords and fully
// deterministic, so development builds behave the same on every run.
type Simulated struct{}

func NewSimulated() *Simulated {
	return &Simulated{}
}

type topicEntry struct {
	keywords []string
	results  []Result
}

var simulatedTopics = []topicEntry{
	{
		keywords: []string{"iot", "embedded", "sensor", "arduino"},
		results: []Result{
			{Title: "IoT Fundamentals - GeeksforGeeks", URL: "https://www.geeksforgeeks.org/introduction-to-internet-of-things-iot/", Snippet: "The Internet of Things connects physical devices with sensors and software to exchange data over networks."},
			{Title: "Getting Started with Arduino", URL: "https://docs.arduino.cc/learn/", Snippet: "Official guides covering boards, sensors and serial communication for embedded projects."},
		},
	},
	{
		keywords: []string{"chemistry", "electrochemistry", "corrosion", "polymer"},
		results: []Result{
			{Title: "Engineering Chemistry - NPTEL", URL: "https://nptel.ac.in/courses/122101001", Snippet: "Video lectures on atomic structure, electrochemistry, corrosion and engineering materials."},
			{Title: "Electrochemistry | Khan Academy", URL: "https://www.khanacademy.org/science/chemistry/oxidation-reduction", Snippet: "Redox reactions, galvanic cells and electrode potentials explained with worked examples."},
		},
	},
	{
		keywords: []string{"physics", "quantum", "optics", "semiconductor"},
		results: []Result{
			{Title: "Engineering Physics - NPTEL", URL: "https://nptel.ac.in/courses/115101001", Snippet: "Oscillations, lasers, fibre optics and introductory quantum mechanics for engineers."},
			{Title: "HyperPhysics Concepts", URL: "http://hyperphysics.phy-astr.gsu.edu/hbase/hframe.html", Snippet: "Concept maps linking optics, waves and solid-state physics topics."},
		},
	},
	{
		keywords: []string{"math", "calculus", "matrix", "matrices", "differential"},
		results: []Result{
			{Title: "Paul's Online Math Notes", URL: "https://tutorial.math.lamar.edu/", Snippet: "Full notes and practice problems for calculus and differential equations."},
			{Title: "Essence of Linear Algebra - 3Blue1Brown", URL: "https://www.3blue1brown.com/topics/linear-algebra", Snippet: "Visual introduction to matrices, eigenvalues and linear transformations."},
		},
	},
	{
		keywords: []string{"programming", "coding", "data structure", "algorithm"},
		results: []Result{
			{Title: "Data Structures Tutorial - GeeksforGeeks", URL: "https://www.geeksforgeeks.org/data-structures/", Snippet: "Arrays, linked lists, trees, graphs and hashing with implementations and practice sets."},
			{Title: "VisuAlgo", URL: "https://visualgo.net/en", Snippet: "Animated visualisations of data structures and algorithms."},
		},
	},
}

var simulatedDefault = []Result{
	{Title: "Khan Academy", URL: "https://www.khanacademy.org/", Snippet: "Free courses across science, engineering and mathematics."},
	{Title: "MIT OpenCourseWare", URL: "https://ocw.mit.edu/", Snippet: "Lecture notes, assignments and exams from MIT courses."},
}

func (s *Simulated) Search(_ context.Context, query string) ([]Result, error) {
	q := strings.ToLower(query)
	for _, topic := range simulatedTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(q, kw) {
				return topic.results, nil
			}
		}
	}

	out := make([]Result, len(simulatedDefault))
	copy(out, simulatedDefault)
	out = append(out, Result{
		Title:   fmt.Sprintf("Search results for %q", query),
		URL:     "https://duckduckgo.com/?q=" + strings.ReplaceAll(strings.TrimSpace(query), " ", "+"),
		Snippet: "General study references related to your question.",
	})
	return out, nil
}
