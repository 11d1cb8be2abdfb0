package systems

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
	"github.com/solarlune/resolv"
)

// maxSubstep 单次位移的最大步长（像素），保证高速下也不会穿过 18px 的图块
const maxSubstep = 8.0

// overlapEpsilon 小于该值的重叠视为相切
const overlapEpsilon = 1e-6

// OverlapHandler 重叠回调，a 带 tagA，b 带 tagB
type OverlapHandler func(a, b ecs.EntityID)

type overlapRule struct {
	tagA    string
	tagB    string
	handler OverlapHandler
}

// PhysicsSystem 街机物理
//
// 每一步：
//  1. 对非静态刚体积分速度（重力、加速度、线性阻尼、最大速度）
//  2. 先沿 X 移动并与地形分离，再沿 Y 移动并分离
//  3. 限制在世界边界内
//  4. 检查注册的重叠规则并调用回调
//
// resolv 空间只用作宽相位，精确判定由轴对齐矩形完成，相切不算重叠。
type PhysicsSystem struct {
	em       *ecs.EntityManager
	space    *resolv.Space
	gravityY float64
	worldW   float64
	worldH   float64
	paused   bool

	tags     map[ecs.EntityID]string
	overlaps []overlapRule
	logger   *log.Logger
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - worldW, worldH: 世界尺寸（像素），也是世界边界
//   - cellSize: 空间哈希格子大小（通常等于图块大小）
//   - gravityY: 重力加速度（像素/秒²）
func NewPhysicsSystem(em *ecs.EntityManager, worldW, worldH float64, cellSize int, gravityY float64) *PhysicsSystem {
	if cellSize <= 0 {
		cellSize = 16
	}
	return &PhysicsSystem{
		em:       em,
		space:    resolv.NewSpace(int(math.Ceil(worldW)), int(math.Ceil(worldH)), cellSize, cellSize),
		gravityY: gravityY,
		worldW:   worldW,
		worldH:   worldH,
		tags:     make(map[ecs.EntityID]string),
		logger:   utils.Logger("PhysicsSystem"),
	}
}

// AddSolidRect 加入一个固定的地形矩形
func (ps *PhysicsSystem) AddSolidRect(x, y, w, h float64) {
	ps.space.Add(resolv.NewObject(x, y, w, h, components.TagSolid))
}

// AddSolidTiles 把图层中标记为碰撞的图块加入地形，返回加入数量
func (ps *PhysicsSystem) AddSolidTiles(layer *tiled.TileLayer) int {
	tiles := layer.CollidingTiles()
	for _, t := range tiles {
		x, y, w, h := t.WorldRect(layer.TileWidth, layer.TileHeight, layer.OriginX, layer.OriginY)
		ps.AddSolidRect(x, y, w, h)
	}
	ps.logger.Debug("solid tiles added", "layer", layer.Name, "count", len(tiles))
	return len(tiles)
}

// AddBody 把实体的刚体登记到碰撞空间
func (ps *PhysicsSystem) AddBody(id ecs.EntityID, tag string) bool {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](ps.em, id)
	body, ok2 := ecs.GetComponent[*components.BodyComponent](ps.em, id)
	if !ok1 || !ok2 {
		ps.logger.Warn("entity has no body", "entity", id)
		return false
	}
	if body.Object != nil {
		ps.space.Remove(body.Object)
	}

	x, y, w, h := body.Bounds(pos)
	obj := resolv.NewObject(x, y, w, h, tag)
	obj.Data = id
	ps.space.Add(obj)
	body.Object = obj
	ps.tags[id] = tag
	return true
}

// RemoveBody 从碰撞空间移除实体（例如被收集的金币）
func (ps *PhysicsSystem) RemoveBody(id ecs.EntityID) {
	delete(ps.tags, id)
	body, ok := ecs.GetComponent[*components.BodyComponent](ps.em, id)
	if !ok || body.Object == nil {
		return
	}
	ps.space.Remove(body.Object)
	body.Object = nil
}

// AddOverlap 注册重叠规则：tagA 的刚体与 tagB 的刚体重叠时调用 handler
func (ps *PhysicsSystem) AddOverlap(tagA, tagB string, handler OverlapHandler) {
	ps.overlaps = append(ps.overlaps, overlapRule{tagA: tagA, tagB: tagB, handler: handler})
}

// Pause 暂停物理世界
func (ps *PhysicsSystem) Pause() { ps.paused = true }

// Resume 恢复物理世界
func (ps *PhysicsSystem) Resume() { ps.paused = false }

// Paused 物理世界是否暂停
func (ps *PhysicsSystem) Paused() bool { return ps.paused }

// Update 推进一个物理步
func (ps *PhysicsSystem) Update(dt float64) {
	if ps.paused || dt <= 0 {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.BodyComponent](ps.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](ps.em, id)
		if body.Static {
			continue
		}
		ps.integrate(body, dt)
		body.Blocked = components.Blocked{}

		if ps.moveAxis(pos, body, body.VelocityX*dt, true) {
			body.VelocityX = 0
		}
		if ps.moveAxis(pos, body, body.VelocityY*dt, false) {
			body.VelocityY = 0
		}
		if body.CollideWorldBounds {
			ps.clampToWorld(pos, body)
		}
		ps.syncObject(pos, body)
	}

	ps.checkOverlaps()
}

func (ps *PhysicsSystem) integrate(body *components.BodyComponent, dt float64) {
	if body.AllowGravity {
		body.VelocityY += ps.gravityY * dt
	}

	if body.AccelerationX != 0 {
		body.VelocityX += body.AccelerationX * dt
	} else if body.DragX > 0 {
		// 线性阻尼：向 0 靠近，不越过 0
		d := body.DragX * dt
		switch {
		case body.VelocityX > d:
			body.VelocityX -= d
		case body.VelocityX < -d:
			body.VelocityX += d
		default:
			body.VelocityX = 0
		}
	}

	if body.MaxVelocityX > 0 {
		body.VelocityX = utils.Clamp(body.VelocityX, -body.MaxVelocityX, body.MaxVelocityX)
	}
	if body.MaxVelocityY > 0 {
		body.VelocityY = utils.Clamp(body.VelocityY, -body.MaxVelocityY, body.MaxVelocityY)
	}
}

// moveAxis 沿一个轴分步移动，返回是否被地形挡住
func (ps *PhysicsSystem) moveAxis(pos *components.PositionComponent, body *components.BodyComponent, delta float64, horizontal bool) bool {
	if delta == 0 {
		return false
	}
	steps := int(math.Ceil(math.Abs(delta) / maxSubstep))
	step := delta / float64(steps)

	for i := 0; i < steps; i++ {
		if horizontal {
			pos.X += step
		} else {
			pos.Y += step
		}
		if body.CollideTiles && ps.separate(pos, body, step, horizontal) {
			return true
		}
	}
	return false
}

// separate 把刚体推出与之重叠的地形，并记录接触方向
func (ps *PhysicsSystem) separate(pos *components.PositionComponent, body *components.BodyComponent, step float64, horizontal bool) bool {
	hit := false
	for _, solid := range ps.nearby(pos, body, components.TagSolid) {
		x, y, w, h := body.Bounds(pos)
		if !rectsOverlap(x, y, w, h, solid.X, solid.Y, solid.W, solid.H) {
			continue
		}
		hit = true
		switch {
		case horizontal && step > 0:
			pos.X -= x + w - solid.X
			body.Blocked.Right = true
		case horizontal && step < 0:
			pos.X += solid.X + solid.W - x
			body.Blocked.Left = true
		case !horizontal && step > 0:
			pos.Y -= y + h - solid.Y
			body.Blocked.Down = true
		case !horizontal && step < 0:
			pos.Y += solid.Y + solid.H - y
			body.Blocked.Up = true
		}
	}
	return hit
}

// nearby 返回宽相位中刚体当前矩形附近带 tag 的对象
func (ps *PhysicsSystem) nearby(pos *components.PositionComponent, body *components.BodyComponent, tag string) []*resolv.Object {
	if body.Object == nil {
		return nil
	}
	body.Object.X, body.Object.Y, body.Object.W, body.Object.H = body.Bounds(pos)
	c := body.Object.Check(0, 0, tag)
	if c == nil {
		return nil
	}
	return c.Objects
}

func (ps *PhysicsSystem) clampToWorld(pos *components.PositionComponent, body *components.BodyComponent) {
	x, y, w, h := body.Bounds(pos)
	if x < 0 {
		pos.X -= x
		body.Blocked.Left = true
		body.VelocityX = 0
	} else if x+w > ps.worldW {
		pos.X -= x + w - ps.worldW
		body.Blocked.Right = true
		body.VelocityX = 0
	}
	if y < 0 {
		pos.Y -= y
		body.Blocked.Up = true
		body.VelocityY = 0
	} else if y+h > ps.worldH {
		pos.Y -= y + h - ps.worldH
		body.Blocked.Down = true
		body.VelocityY = 0
	}
}

func (ps *PhysicsSystem) syncObject(pos *components.PositionComponent, body *components.BodyComponent) {
	if body.Object == nil {
		return
	}
	body.Object.X, body.Object.Y, body.Object.W, body.Object.H = body.Bounds(pos)
	body.Object.Update()
}

func (ps *PhysicsSystem) checkOverlaps() {
	for _, rule := range ps.overlaps {
		for _, a := range ps.bodiesWithTag(rule.tagA) {
			posA, okA := ecs.GetComponent[*components.PositionComponent](ps.em, a)
			bodyA, okB := ecs.GetComponent[*components.BodyComponent](ps.em, a)
			if !okA || !okB || bodyA.Object == nil {
				continue
			}

			candidates := make([]ecs.EntityID, 0)
			for _, o := range ps.nearby(posA, bodyA, rule.tagB) {
				if id, ok := o.Data.(ecs.EntityID); ok {
					candidates = append(candidates, id)
				}
			}
			sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

			for _, b := range candidates {
				if ps.tags[a] != rule.tagA || ps.tags[b] != rule.tagB {
					continue // 回调中已被移除
				}
				if ps.em.IsPendingDestroy(b) || !ps.Overlapping(a, b) {
					continue
				}
				rule.handler(a, b)
			}
		}
	}
}

func (ps *PhysicsSystem) bodiesWithTag(tag string) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0)
	for id, t := range ps.tags {
		if t == tag {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Overlapping 两个刚体当前是否重叠（相切不算）
func (ps *PhysicsSystem) Overlapping(a, b ecs.EntityID) bool {
	posA, ok1 := ecs.GetComponent[*components.PositionComponent](ps.em, a)
	bodyA, ok2 := ecs.GetComponent[*components.BodyComponent](ps.em, a)
	posB, ok3 := ecs.GetComponent[*components.PositionComponent](ps.em, b)
	bodyB, ok4 := ecs.GetComponent[*components.BodyComponent](ps.em, b)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	ax, ay, aw, ah := bodyA.Bounds(posA)
	bx, by, bw, bh := bodyB.Bounds(posB)
	return rectsOverlap(ax, ay, aw, ah, bx, by, bw, bh)
}

func rectsOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw-overlapEpsilon && ax+aw > bx+overlapEpsilon &&
		ay < by+bh-overlapEpsilon && ay+ah > by+overlapEpsilon
}
