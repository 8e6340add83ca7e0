package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLoadCountsOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(loadsTotal.WithLabelValues(OutcomeOK))
	recordsBefore := testutil.ToFloat64(recordsLoaded)
	noDataBefore := testutil.ToFloat64(loadsTotal.WithLabelValues(OutcomeNoData))

	ObserveLoad(OutcomeOK, 12, 0.01)
	ObserveLoad(OutcomeNoData, 0, 0.01)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(loadsTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, recordsBefore+12, testutil.ToFloat64(recordsLoaded))
	assert.Equal(t, noDataBefore+1, testutil.ToFloat64(loadsTotal.WithLabelValues(OutcomeNoData)))
}

func TestIncExport(t *testing.T) {
	before := testutil.ToFloat64(exportsTotal.WithLabelValues("csv"))
	IncExport("csv")
	assert.Equal(t, before+1, testutil.ToFloat64(exportsTotal.WithLabelValues("csv")))
}
