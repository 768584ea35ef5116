package utils

import (
	"log"

	"github.com/fatih/color"
)

func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// IsPermError is a client side failure, retrying will not help
func IsPermError(status int) bool {
	return status >= 400 && status < 500
}

func IsTempError(status int) bool {
	return status >= 500 || status == 0
}

func PrintResponseDetails(status int, details string) {

	var c *color.Color
	switch true {
	case IsTempError(status):
		c = color.New(color.FgHiRed)
	case IsPermError(status):
		c = color.New(color.FgYellow)
	case IsSuccess(status):
		c = color.New(color.FgHiGreen)
	default:
		c = color.New(color.FgHiBlue)
	}

	formatLog := c.SprintFunc()
	log.Println(formatLog(details))
}
