package export

// TimetableRow is one published exam placement in tabular form. The csv tags
// drive both the CSV column order and the PDF table headers.
type TimetableRow struct {
	CourseCode string `csv:"course_code"`
	CourseName string `csv:"course_name"`
	Room       string `csv:"room"`
	Faculty    string `csv:"faculty"`
	Date       string `csv:"date"`
	StartTime  string `csv:"start_time"`
	EndTime    string `csv:"end_time"`
	ExamType   string `csv:"exam_type"`
	Status     string `csv:"status"`
	Students   int    `csv:"students"`
}

func timetableHeaders() []string {
	return []string{"Course", "Name", "Room", "Faculty", "Date", "Start", "End", "Type", "Status", "Students"}
}
