package catalog

// Default returns the built-in LearnFlow tables. The platform ships a
// first-year engineering catalogue; additional courses are added here
// as the content team publishes them.
func Default() *Catalog {
	courses := []Course{
		{
			Code:        "CHB101",
			Name:        "Engineering Chemistry",
			Description: "Atomic structure, bonding, electrochemistry and engineering materials.",
			Topics: []string{
				"Atomic and Molecular Structure",
				"Spectroscopic Techniques",
				"Electrochemistry and Corrosion",
				"Water Technology",
				"Engineering Materials and Polymers",
			},
			Resources: []CourseResource{
				{Name: "CHB101 Notes (All Units)", Path: "/resources/notes/chb101"},
				{Name: "CHB101 Lab Manual", Path: "/resources/lab-manuals/chb101"},
			},
		},
		{
			Code:        "MAB101",
			Name:        "Engineering Mathematics I",
			Description: "Calculus, matrices and differential equations for first-year engineers.",
			Topics: []string{
				"Matrices and Eigenvalues",
				"Differential Calculus",
				"Partial Differentiation",
				"Multiple Integrals",
				"Ordinary Differential Equations",
			},
			Resources: []CourseResource{
				{Name: "MAB101 Notes", Path: "/resources/notes/mab101"},
				{Name: "MAB101 Assignment Pack", Path: "/resources/assignments/mab101"},
			},
		},
		{
			Code:        "PHB101",
			Name:        "Engineering Physics",
			Description: "Oscillations, optics, quantum mechanics and solid-state basics.",
			Topics: []string{
				"Oscillations and Waves",
				"Interference and Diffraction",
				"Lasers and Fibre Optics",
				"Quantum Mechanics",
				"Semiconductor Physics",
			},
			Resources: []CourseResource{
				{Name: "PHB101 Notes", Path: "/resources/notes/phb101"},
				{Name: "PHB101 Lab Manual", Path: "/resources/lab-manuals/phb101"},
			},
		},
		{
			Code:        "CSB201",
			Name:        "Data Structures",
			Description: "Linear and non-linear data structures with algorithm analysis.",
			Topics: []string{
				"Arrays and Linked Lists",
				"Stacks and Queues",
				"Trees and Heaps",
				"Graphs and Traversals",
				"Hashing and Searching",
			},
			Resources: []CourseResource{
				{Name: "CSB201 Notes", Path: "/resources/notes/csb201"},
				{Name: "CSB201 Assignments", Path: "/resources/assignments/csb201"},
			},
		},
		{
			Code:        "ESB303",
			Name:        "Embedded Systems and IoT",
			Description: "Microcontrollers, sensors and connected-device design.",
			Topics: []string{
				"Microcontroller Architecture",
				"Sensors and Actuators",
				"Serial Communication Protocols",
				"IoT Network Stacks",
				"Edge Data Processing",
			},
			Resources: []CourseResource{
				{Name: "ESB303 Notes", Path: "/resources/notes/esb303"},
				{Name: "IoT Starter Kit Guide", Path: "/resources/downloads/iot-starter-kit"},
			},
		},
	}

	semesters := []SemesterInfo{
		{Number: 1, Path: "/semester/1", Courses: []string{"CHB101", "MAB101", "PHB101"}},
		{Number: 2, Path: "/semester/2", Courses: []string{"MAB101", "PHB101"}},
		{Number: 3, Path: "/semester/3", Courses: []string{"CSB201", "ESB303"}},
	}

	nav := []NavTarget{
		{Keyword: "notes", Title: "Lecture Notes", Path: "/resources/notes", Description: "Unit-wise notes for every course"},
		{Keyword: "assignment", Title: "Assignments", Path: "/resources/assignments", Description: "Assignment sheets with submission dates"},
		{Keyword: "lab", Title: "Lab Manuals", Path: "/resources/lab-manuals", Description: "Experiment write-ups and viva questions"},
		{Keyword: "download", Title: "Downloads", Path: "/resources/downloads", Description: "Curated software, datasheets and guides"},
		{Keyword: "timetable", Title: "Timetable", Path: "/timetable", Description: "Weekly class and lab schedule"},
		{Keyword: "syllabus", Title: "Syllabus", Path: "/syllabus", Description: "Official syllabus per course"},
		{Keyword: "department", Title: "Departments", Path: "/departments", Description: "Department pages and faculty lists"},
		{Keyword: "exam", Title: "Exam Cell", Path: "/exams", Description: "Exam schedules and previous papers"},
	}

	return New(courses, semesters, nav)
}
