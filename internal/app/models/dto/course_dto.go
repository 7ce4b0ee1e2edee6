package dto

// CourseRequest carries the editable course fields
type CourseRequest struct {
	Title       string `json:"title" example:"Data Analysis"`
	Description string `json:"description" example:"Spreadsheets to dashboards"`
	Category    string `json:"category" example:"Analytics"`
}

// LectureFilterQuery selects lectures by access tag
type LectureFilterQuery struct {
	Access string `form:"access" json:"access" example:"Online"`
}

// LectureRequest carries the editable lecture fields
type LectureRequest struct {
	Title    string   `json:"title" example:"Week 1"`
	Lecturer string   `json:"lecturer" example:"Dr. Boateng"`
	AccessBy []string `json:"access_by" example:"Online,Onsite"`
	URL      string   `json:"urls" example:"https://videos.example.com/w1"`
}

// DeleteRequest confirms a destructive action
type DeleteRequest struct {
	Confirm bool `form:"confirm" json:"confirm"`
}
