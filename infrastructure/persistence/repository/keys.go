package repository

import (
	"fmt"

	"github.com/roomkit/guesthistory/domain/model"
)

// Key layout, shared by the repositories and the uninstall sweep:
//
//	<clientKey>:history_flag:<roomID>    flag values ("true"/"false")
//	<clientKey>:greeting_flag:<roomID>
//	<clientKey>:history_hooks:<roomID>   HookRecord JSON
//	<clientKey>:history_token:<roomID>   reverse index, value is the token
//	<clientKey>:clientInfo               Tenant JSON
//	history_token:<token>                global forward index, TokenContext JSON
const (
	tokenKeyPrefix = "history_token:"
	tenantInfoKey  = "clientInfo"
)

func flagKey(flag model.FlagName, roomID string) string {
	return fmt.Sprintf("%s_flag:%s", flag, roomID)
}

func hookKey(roomID string) string {
	return "history_hooks:" + roomID
}

func tokenReverseKey(roomID string) string {
	return tokenKeyPrefix + roomID
}

func tokenForwardKey(token string) string {
	return tokenKeyPrefix + token
}
