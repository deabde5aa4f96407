package threat

import (
	"math"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/utility"
)

// UnitInfo reads unit facts straight off the model.
type UnitInfo struct{}

var _ utility.UnitInformationProvider = UnitInfo{}

func (UnitInfo) ArmorRemainingPercent(u *model.Unit) float64    { return u.ArmorRemainingPercent() }
func (UnitInfo) InternalRemainingPercent(u *model.Unit) float64 { return u.InternalRemainingPercent() }
func (UnitInfo) MaxWeaponRange(u *model.Unit) int               { return u.MaxWeaponRange() }
func (UnitInfo) Role(u *model.Unit) model.Role                  { return u.Role }
func (UnitInfo) IsVIP(u *model.Unit) bool                       { return u.IsVIP() }

// Damage estimates damage from each unit's weapon table.
type Damage struct {
	world utility.World
}

var _ utility.DamageCalculator = (*Damage)(nil)

// NewDamage returns a calculator over w's friendly units.
func NewDamage(w utility.World) *Damage { return &Damage{world: w} }

// UnitMaxDamageAtRange sums every weapon of u that reaches rng.
func (d *Damage) UnitMaxDamageAtRange(u *model.Unit, rng int) int { return u.DamageAtRange(rng) }

// MaxDamageFromFriendsInRange totals what own and allied units within
// Euclidean distance r of pos could deal to pos. A weapon counts when its
// range covers the whole distance, as in EnemiesThreateningPosition.
func (d *Damage) MaxDamageFromFriendsInRange(pos model.Coords, r int) int {
	total := 0
	for _, side := range [][]*model.Unit{d.world.MyUnits(), d.world.AlliedUnits()} {
		for _, u := range side {
			dist := pos.EuclideanDistance(u.Position())
			if dist <= float64(r) {
				total += u.DamageAtRange(int(math.Ceil(dist)))
			}
		}
	}
	return total
}
