package dataset

import (
	"fmt"
	"strings"

	"flight-route-service/internal/domain"

	"github.com/hashicorp/go-multierror"
)

// Validate builds the network and folds every skipped record, plus the fatal
// error if any, into one multierror. The network is nil only when building failed.
func Validate(doc Document, defaultMinConnection int) (*domain.Network, error) {
	n, warnings, err := Build(doc, defaultMinConnection)

	var result *multierror.Error
	result = multierror.Append(result, warnings...)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if result != nil {
		result.ErrorFormat = listProblems
	}
	return n, result.ErrorOrNil()
}

func listProblems(errs []error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d dataset problem(s):", len(errs))
	for _, err := range errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}
