package dto

type SchoolResponse struct {
	RowID           int     `json:"row_id"`
	Name            string  `json:"name"`
	Municipality    string  `json:"municipality"`
	Address         string  `json:"address"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	MunicipalSeats  int     `json:"municipal_seats"`
	MontessoriSeats int     `json:"montessori_seats"`
	SupportSeats    int     `json:"support_seats"`
}

type ListSchoolsResponse struct {
	Schools []SchoolResponse `json:"schools"`
}
