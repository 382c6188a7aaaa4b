package employee

type addEmployeeRequest struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Phone       string `json:"phone"`
	DailySalary int    `json:"dailySalary"`
}

type editEmployeeRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Phone       string `json:"phone"`
	DailySalary int    `json:"dailySalary"`
}

type removeEmployeeRequest struct {
	ID string `json:"id"`
}

type changePresenceRequest struct {
	ID       string `json:"id"`
	Presence bool   `json:"presence"`
	Date     string `json:"date"`
}

type modifyAdvanceRequest struct {
	EmployeeID string `json:"employeeId"`
	Advance    int    `json:"advance"`
	Date       string `json:"date"`
}

type deleteAdvanceRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
}
