package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

// Pretty print JSON
func PrettyJSON(key string, val interface{}, canPrint bool) (jsonStr string, err error) {
	jsonBytes, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		log.Printf("JSON_ENCODEERR: Error encoding json: (%v %v)\n", val, err)
		return "", err
	}

	jsonStr = string(jsonBytes)
	if canPrint {
		log.Printf("KEY: %s, VALUE: %v\n", key, jsonStr)
	}
	return jsonStr, nil
}

func ComputeDuration(start time.Time) float64 {
	end := time.Now()
	duration := end.Sub(start)
	return duration.Seconds()
}

// PrintErr logs a tagged failure and returns it as an error
func PrintErr(code string, message string, cause interface{}) error {
	err := fmt.Errorf("%s: %s, %v", code, message, cause)
	log.Println(err)
	return err
}

// GetIntPtr parses trimmed text as an int, nil when it is not a number
func GetIntPtr(val string) *int {
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return nil
	}
	return &i
}

// SplitIDs splits a comma separated list, dropping blanks
func SplitIDs(val string) []string {
	ids := make([]string, 0)
	for _, id := range strings.Split(val, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// StringInSlice reports whether s is one of list
func StringInSlice(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
