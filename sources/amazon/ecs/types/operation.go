package types

import "fmt"

// Operation is the vendor operation named in the Operation parameter
// reference https://docs.aws.amazon.com/AWSECommerceService/latest/DG/CHAP_OperationListAlphabetical.html
type Operation string

// Operation types
const (
	ItemLookup       Operation = "ItemLookup"
	ItemSearch       Operation = "ItemSearch"
	SimilarityLookup Operation = "SimilarityLookup"
	BrowseNodeLookup Operation = "BrowseNodeLookup"
)

var operations = map[Operation]bool{
	ItemLookup:       true,
	ItemSearch:       true,
	SimilarityLookup: true,
	BrowseNodeLookup: true,
}

// Validate rejects operations outside the supported set
func (o Operation) Validate() error {
	if !operations[o] {
		return fmt.Errorf("unsupported operation: %q", string(o))
	}
	return nil
}

// ResponseElement is the root element name of a successful response
func (o Operation) ResponseElement() string {
	return fmt.Sprintf("%sResponse", o)
}
