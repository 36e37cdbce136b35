package vault

type unlockInput struct {
	Body unlockRequest
}

type unlockRequest struct {
	Password string `json:"password" minLength:"1" doc:"Vault password"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Locked            bool   `json:"locked"`
	PasswordEnabled   bool   `json:"password_enabled"`
	EncryptionEnabled bool   `json:"encryption_enabled"`
	Hint              string `json:"hint,omitempty"`
}

type actionOutput struct {
	Body actionResponse
}

type actionResponse struct {
	Status string `json:"status"`
}
