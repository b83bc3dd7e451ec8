package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	GradeLevel  string `json:"grade_level" binding:"required"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date" binding:"required"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	GradeLevel  string `json:"grade_level"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}
