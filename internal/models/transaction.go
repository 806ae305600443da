package models

// Transaction is a payout record. TransID is the stable identity, MessageID is
// what the server expects when the payout is acknowledged.
type Transaction struct {
	MessageID            FlexString `json:"message_id"`
	Type                 FlexString `json:"type"`
	TransID              FlexString `json:"trans_id"`
	EarningPublisher     FlexString `json:"verdienst_publisher"`
	EarningUser          FlexString `json:"verdienst_user_local_money"`
	SubID1               FlexString `json:"subid_1"`
	SubID2               FlexString `json:"subid_2"`
	DateTime             FlexString `json:"datetime"`
	Status               FlexString `json:"status"`
	SurveyID             FlexString `json:"survey_id"`
	IP                   FlexString `json:"ip"`
	LOI                  FlexString `json:"loi"`
	IsPaidToUser         FlexString `json:"is_paid_to_user"`
	IsPaidToUserDateTime FlexString `json:"is_paid_to_user_datetime"`
	IsPaidToUserType     FlexString `json:"is_paid_to_user_type"`
}

func (t Transaction) ID() string {
	return string(t.TransID)
}
