package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripLink_DistinguishesAbsentNullAndSet(t *testing.T) {
	var absent UpdateClientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Ana"}`), &absent))
	assert.False(t, absent.TripID.Set)

	var cleared UpdateClientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tripId":null}`), &cleared))
	assert.True(t, cleared.TripID.Set)
	assert.Nil(t, cleared.TripID.Ptr())

	var linked UpdateClientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tripId":" t1 "}`), &linked))
	assert.True(t, linked.TripID.Set)
	require.NotNil(t, linked.TripID.Ptr())
	assert.Equal(t, "t1", *linked.TripID.Ptr())
}

func TestDate_JSONAndScan(t *testing.T) {
	d := NewDate(2025, time.March, 9)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(data))

	var zero Date
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-09"`), &parsed))
	assert.True(t, parsed.Equal(d.Time))
	assert.Error(t, json.Unmarshal([]byte(`"09/03/2025"`), &parsed))

	var scanned Date
	require.NoError(t, scanned.Scan([]byte("2025-03-09")))
	assert.Equal(t, "2025-03-09", scanned.String())
	require.NoError(t, scanned.Scan(time.Date(2025, 3, 9, 15, 4, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-09", scanned.String())
	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())
}

func testSet() *EntitySet {
	t1 := "t1"
	return NewEntitySet(
		[]Client{
			{ID: "c2", FullName: "Bruno", TripID: &t1},
			{ID: "c1", FullName: "Ana", TripID: &t1},
			{ID: "c3", FullName: "Carla"},
		},
		[]Trip{
			{ID: "t2", DepartureDate: NewDate(2025, 9, 1)},
			{ID: "t1", DepartureDate: NewDate(2025, 7, 1)},
		},
		[]Payment{
			{ID: "p1", ClientID: "c1", TripID: &t1, Total: 1000, CreatedAt: time.Unix(10, 0)},
			{ID: "p2", ClientID: "c3", Total: 500, CreatedAt: time.Unix(5, 0)},
		},
	)
}

func TestEntitySet_Lookups(t *testing.T) {
	set := testSet()

	p, ok := set.FindPayment("c1", "t1")
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)
	_, ok = set.FindPayment("c3", "t1")
	assert.False(t, ok)

	clients := set.ClientsOfTrip("t1")
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana", clients[0].FullName)

	assert.Len(t, set.PaymentsOfTrip("t1"), 1)
	assert.Len(t, set.PaymentsOfClient("c3"), 1)

	trips := set.TripList()
	assert.Equal(t, []string{"t1", "t2"}, []string{trips[0].ID, trips[1].ID})
	payments := set.PaymentList()
	assert.Equal(t, "p2", payments[0].ID)
}

func TestEntitySet_ApplyLeavesReceiverUntouched(t *testing.T) {
	set := testSet()

	var unit UnitOfWork
	payment := set.Payments["p1"]
	payment.TripID = nil
	payment.Installments = append(payment.Installments, Installment{ID: "i1", Amount: 100})
	unit.UpsertPayment(payment)
	unit.Delete(CollectionClients, "c2")

	next := set.Apply(unit)

	assert.NotContains(t, next.Clients, "c2")
	assert.Contains(t, set.Clients, "c2")
	assert.Nil(t, next.Payments["p1"].TripID)
	assert.NotNil(t, set.Payments["p1"].TripID)
	assert.Len(t, next.Payments["p1"].Installments, 1)
	assert.Empty(t, set.Payments["p1"].Installments)
}

func TestUnitOfWork_Validate(t *testing.T) {
	var unit UnitOfWork
	assert.True(t, unit.Empty())
	unit.UpsertTrip(Trip{ID: "t1"})
	unit.Delete(CollectionPayments, "p1")
	assert.NoError(t, unit.Validate())

	unit.Ops = append(unit.Ops, Operation{Kind: OpUpsert, Collection: CollectionClients, ID: "c1"})
	assert.Error(t, unit.Validate())

	bad := UnitOfWork{Ops: []Operation{{Kind: OpDelete, Collection: CollectionTrips}}}
	assert.Error(t, bad.Validate())
}

func TestClientClone_DoesNotShareTripPointer(t *testing.T) {
	t1 := "t1"
	c := Client{ID: "c1", TripID: &t1}
	clone := c.Clone()
	*clone.TripID = "t2"
	assert.Equal(t, "t1", *c.TripID)
}
