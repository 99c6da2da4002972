package cancel_reservation

// CancelReservationRequest HTTP request model.
// Токен отмены - единственный реквизит: он приходит гостю в письме
// и сам по себе подтверждает право на отмену.
type CancelReservationRequest struct {
	Token string `json:"token"`
}
