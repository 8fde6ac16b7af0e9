package arena

// Side identifies which combatant a selection is for
type Side string

// Sides of a fight
const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Selection is what the player picked on a choose page before the fight starts
type Selection struct {
	ClassName  string `json:"class_name"`
	WeaponName string `json:"weapon_name"`
	ArmorName  string `json:"armor_name"`
	Name       string `json:"name"`
}
