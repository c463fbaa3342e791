package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var (
	_ repository.RoomTypeRepository = (*RoomTypeRepo)(nil)
	_ repository.RoomRepository     = (*RoomRepo)(nil)
)

// RoomTypeRepo tipos de habitación en memoria.
type RoomTypeRepo struct{ c conn }

func NewRoomTypeRepository(s *Store) *RoomTypeRepo { return &RoomTypeRepo{conn{s: s}} }

func (d *data) roomTypeByName(companyID int64, name string, except int64) bool {
	for _, rt := range d.roomTypes.rows {
		if rt.ID != except && visible(&rt.Audit, companyID) && strings.EqualFold(rt.Name, name) {
			return true
		}
	}
	return false
}

func (d *data) countRooms(companyID, roomTypeID int64) int64 {
	var n int64
	for _, rm := range d.rooms.rows {
		if visible(&rm.Audit, companyID) && rm.RoomTypeID == roomTypeID {
			n++
		}
	}
	return n
}

func (d *data) expandRoomType(rt entity.RoomType) *entity.RoomType {
	rt.Amenities = slices.Clone(rt.Amenities)
	if rt.Amenities == nil {
		rt.Amenities = []string{}
	}
	rt.RoomCount = d.countRooms(rt.CompanyID, rt.ID)
	d.creatorName(&rt.Audit)
	return &rt
}

func (r *RoomTypeRepo) Create(_ context.Context, rt *entity.RoomType) error {
	d, unlock := r.c.lock()
	defer unlock()
	if d.roomTypeByName(rt.CompanyID, rt.Name, 0) {
		return domain.Duplicate("tipo de habitación", "name", rt.Name)
	}
	rt.ID = d.roomTypes.next()
	row := *rt
	row.Amenities = slices.Clone(rt.Amenities)
	d.roomTypes.rows[rt.ID] = row
	return nil
}

func (r *RoomTypeRepo) find(companyID int64, match func(*entity.RoomType) bool) *entity.RoomType {
	d, unlock := r.c.lock()
	defer unlock()
	for _, rt := range d.roomTypes.rows {
		if visible(&rt.Audit, companyID) && match(&rt) {
			return d.expandRoomType(rt)
		}
	}
	return nil
}

func (r *RoomTypeRepo) GetByID(_ context.Context, companyID, id int64) (*entity.RoomType, error) {
	return r.find(companyID, func(rt *entity.RoomType) bool { return rt.ID == id }), nil
}

func (r *RoomTypeRepo) GetByName(_ context.Context, companyID int64, name string) (*entity.RoomType, error) {
	return r.find(companyID, func(rt *entity.RoomType) bool { return strings.EqualFold(rt.Name, name) }), nil
}

func (r *RoomTypeRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.RoomType, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.RoomType
	for _, rt := range d.roomTypes.rows {
		if visible(&rt.Audit, companyID) && matches(q.Search, rt.Name, rt.Description) {
			rows = append(rows, rt)
		}
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.RoomTypeSort, func(rt entity.RoomType, col string) any {
		switch col {
		case "name":
			return rt.Name
		case "base_price":
			return rt.BasePrice
		case "max_occupancy":
			return rt.MaxOccupancy
		}
		v, _ := auditKey(&rt.Audit, col)
		return v
	}, func(rt entity.RoomType) int64 { return rt.ID })
	out := make([]*entity.RoomType, len(rows))
	for i, rt := range rows {
		out[i] = d.expandRoomType(rt)
	}
	return out, total, nil
}

func (r *RoomTypeRepo) Update(_ context.Context, rt *entity.RoomType) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.roomTypes.rows[rt.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, rt.CompanyID)); err != nil {
		return err
	}
	if d.roomTypeByName(rt.CompanyID, rt.Name, rt.ID) {
		return domain.Duplicate("tipo de habitación", "name", rt.Name)
	}
	cur.Name, cur.Description, cur.BasePrice, cur.MaxOccupancy = rt.Name, rt.Description, rt.BasePrice, rt.MaxOccupancy
	cur.Amenities = slices.Clone(rt.Amenities)
	cur.UpdatedBy, cur.UpdatedAt = rt.UpdatedBy, rt.UpdatedAt
	d.roomTypes.rows[rt.ID] = cur
	return nil
}

func (r *RoomTypeRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.roomTypes, companyID, id, actorID, func(x *entity.RoomType) *entity.Audit { return &x.Audit })
}

func (r *RoomTypeRepo) CountRooms(_ context.Context, companyID, roomTypeID int64) (int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	return d.countRooms(companyID, roomTypeID), nil
}

func (r *RoomTypeRepo) Aggregate(_ context.Context, companyID int64) (*entity.RoomTypeAggregate, error) {
	d, unlock := r.c.lock()
	defer unlock()
	a := &entity.RoomTypeAggregate{SumBasePrice: decimal.Zero}
	for _, rt := range d.roomTypes.rows {
		if visible(&rt.Audit, companyID) {
			a.TotalTypes++
			a.SumBasePrice = a.SumBasePrice.Add(rt.BasePrice)
			a.TotalRooms += d.countRooms(companyID, rt.ID)
		}
	}
	return a, nil
}

// RoomRepo habitaciones en memoria.
type RoomRepo struct{ c conn }

func NewRoomRepository(s *Store) *RoomRepo { return &RoomRepo{conn{s: s}} }

func (d *data) roomNumberTaken(companyID int64, number string, except int64) bool {
	for _, rm := range d.rooms.rows {
		if rm.ID != except && visible(&rm.Audit, companyID) && rm.Number == number {
			return true
		}
	}
	return false
}

func (d *data) expandRoom(rm entity.Room) *entity.Room {
	rm.RoomTypeName = d.roomTypes.rows[rm.RoomTypeID].Name
	d.creatorName(&rm.Audit)
	return &rm
}

func (r *RoomRepo) Create(_ context.Context, rm *entity.Room) error {
	d, unlock := r.c.lock()
	defer unlock()
	if d.roomNumberTaken(rm.CompanyID, rm.Number, 0) {
		return domain.Duplicate("habitación", "number", rm.Number)
	}
	rm.ID = d.rooms.next()
	d.rooms.rows[rm.ID] = *rm
	return nil
}

func (r *RoomRepo) find(companyID int64, match func(*entity.Room) bool) *entity.Room {
	d, unlock := r.c.lock()
	defer unlock()
	for _, rm := range d.rooms.rows {
		if visible(&rm.Audit, companyID) && match(&rm) {
			return d.expandRoom(rm)
		}
	}
	return nil
}

func (r *RoomRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Room, error) {
	return r.find(companyID, func(rm *entity.Room) bool { return rm.ID == id }), nil
}

func (r *RoomRepo) GetByNumber(_ context.Context, companyID int64, number string) (*entity.Room, error) {
	return r.find(companyID, func(rm *entity.Room) bool { return rm.Number == number }), nil
}

func (r *RoomRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.Room, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.Room
	for _, rm := range d.rooms.rows {
		switch {
		case !visible(&rm.Audit, companyID), !matches(q.Search, rm.Number, rm.Notes):
			continue
		case q.ParentID > 0 && rm.RoomTypeID != q.ParentID:
			continue
		case q.Status != "" && rm.Status != q.Status:
			continue
		}
		rows = append(rows, rm)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.RoomSort, func(rm entity.Room, col string) any {
		switch col {
		case "number":
			return rm.Number
		case "floor":
			return rm.Floor
		case "status":
			return rm.Status
		}
		v, _ := auditKey(&rm.Audit, col)
		return v
	}, func(rm entity.Room) int64 { return rm.ID })
	out := make([]*entity.Room, len(rows))
	for i, rm := range rows {
		out[i] = d.expandRoom(rm)
	}
	return out, total, nil
}

func (r *RoomRepo) Update(_ context.Context, rm *entity.Room) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.rooms.rows[rm.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, rm.CompanyID)); err != nil {
		return err
	}
	if d.roomNumberTaken(rm.CompanyID, rm.Number, rm.ID) {
		return domain.Duplicate("habitación", "number", rm.Number)
	}
	cur.Number, cur.Floor, cur.RoomTypeID, cur.Status, cur.Notes = rm.Number, rm.Floor, rm.RoomTypeID, rm.Status, rm.Notes
	cur.UpdatedBy, cur.UpdatedAt = rm.UpdatedBy, rm.UpdatedAt
	d.rooms.rows[rm.ID] = cur
	return nil
}

func (r *RoomRepo) UpdateStatus(_ context.Context, companyID, id int64, status string, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.rooms.rows[id]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, companyID)); err != nil {
		return err
	}
	cur.Status = status
	cur.Touch(actorID, now())
	d.rooms.rows[id] = cur
	return nil
}

func (r *RoomRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.rooms, companyID, id, actorID, func(x *entity.Room) *entity.Audit { return &x.Audit })
}

func (r *RoomRepo) CountByStatus(_ context.Context, companyID int64) (map[string]int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	out := make(map[string]int64)
	for _, rm := range d.rooms.rows {
		if visible(&rm.Audit, companyID) {
			out[rm.Status]++
		}
	}
	return out, nil
}
