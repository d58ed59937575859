package models

import "fmt"

// Collection names one of the three entity collections
type Collection string

const (
	CollectionClients  Collection = "clients"
	CollectionTrips    Collection = "trips"
	CollectionPayments Collection = "payments"

	// CollectionInstallments only names identities; installments are written through their payment
	CollectionInstallments Collection = "installments"
)

// OpKind is the write applied by an Operation
type OpKind string

const (
	OpUpsert OpKind = "upsert"
	OpDelete OpKind = "delete"
)

// Operation is one write in a unit of work. Upserts carry exactly one entity
// matching Collection; deletes carry only the ID.
type Operation struct {
	Kind       OpKind
	Collection Collection
	ID         string
	Client     *Client
	Trip       *Trip
	Payment    *Payment
}

// UnitOfWork is an ordered list of writes applied all-or-nothing
type UnitOfWork struct {
	Ops []Operation
}

func (u *UnitOfWork) UpsertClient(c Client) {
	clone := c.Clone()
	u.Ops = append(u.Ops, Operation{Kind: OpUpsert, Collection: CollectionClients, ID: c.ID, Client: &clone})
}

func (u *UnitOfWork) UpsertTrip(t Trip) {
	u.Ops = append(u.Ops, Operation{Kind: OpUpsert, Collection: CollectionTrips, ID: t.ID, Trip: &t})
}

func (u *UnitOfWork) UpsertPayment(p Payment) {
	clone := p.Clone()
	u.Ops = append(u.Ops, Operation{Kind: OpUpsert, Collection: CollectionPayments, ID: p.ID, Payment: &clone})
}

func (u *UnitOfWork) Delete(collection Collection, id string) {
	u.Ops = append(u.Ops, Operation{Kind: OpDelete, Collection: collection, ID: id})
}

// Empty reports whether the unit carries no writes
func (u *UnitOfWork) Empty() bool {
	return len(u.Ops) == 0
}

// Validate checks the shape of every operation before it reaches storage
func (u *UnitOfWork) Validate() error {
	for i, op := range u.Ops {
		if op.ID == "" {
			return fmt.Errorf("operation %d: missing id", i)
		}
		switch op.Kind {
		case OpDelete:
			continue
		case OpUpsert:
		default:
			return fmt.Errorf("operation %d: unknown kind %q", i, op.Kind)
		}

		var ok bool
		switch op.Collection {
		case CollectionClients:
			ok = op.Client != nil && op.Client.ID == op.ID
		case CollectionTrips:
			ok = op.Trip != nil && op.Trip.ID == op.ID
		case CollectionPayments:
			ok = op.Payment != nil && op.Payment.ID == op.ID
		default:
			return fmt.Errorf("operation %d: unknown collection %q", i, op.Collection)
		}
		if !ok {
			return fmt.Errorf("operation %d: upsert of %s %s carries no matching entity", i, op.Collection, op.ID)
		}
	}
	return nil
}
